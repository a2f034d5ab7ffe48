package format_test

import (
	"strings"
	"testing"

	. "github.com/pseudomuto/sqlfmt/pkg/format"
	"github.com/stretchr/testify/require"
)

const selectEight = "SELECT\n  a,\n  b,\n  c,\n  d,\n  e,\n  f,\n  g,\n  h\nFROM foo;"

func TestFormat_maxInlineArguments(t *testing.T) {
	t.Run("arguments collapse when they fit", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineArguments = Ptr(50)
		expected := strings.Join([]string{
			"SELECT",
			"  a, b, c, d, e, f, g, h",
			"FROM",
			"  foo;",
		}, "\n")
		require.Equal(t, expected, String(opts, selectEight))
	})

	t.Run("and or collapse when they fit", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineArguments = Ptr(100)
		expected := strings.Join([]string{
			"SELECT",
			"  *",
			"FROM",
			"  foo",
			"WHERE",
			"  Column1 = 'testing' AND ((Column2 = Column3 OR Column4 >= NOW()));",
		}, "\n")
		input := "SELECT * FROM foo WHERE Column1 = 'testing'\nAND ( (Column2 = Column3 OR Column4 >= NOW()) );"
		require.Equal(t, expected, String(opts, input))
	})

	t.Run("arguments split when they do not fit", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineArguments = Ptr(10)
		expected := strings.Join([]string{
			"SELECT",
			"  aaaaa,",
			"  bbbbb,",
			"  ccccc",
			"FROM",
			"  foo;",
		}, "\n")
		require.Equal(t, expected, String(opts, "SELECT aaaaa, bbbbb, ccccc FROM foo;"))
	})
}

func TestFormat_maxInlineTopLevel(t *testing.T) {
	t.Run("whole clauses collapse when they fit", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineArguments = Ptr(50)
		opts.MaxInlineTopLevel = Ptr(50)
		expected := "SELECT a, b, c, d, e, f, g, h\nFROM foo;"
		require.Equal(t, expected, String(opts, selectEight))
	})

	t.Run("keyword breaks but arguments collapse", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineArguments = Ptr(50)
		opts.MaxInlineTopLevel = Ptr(20)
		expected := "SELECT\n  a, b, c, d, e, f, g, h\nFROM foo;"
		require.Equal(t, expected, String(opts, selectEight))
	})

	t.Run("single block argument attaches to the keyword", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineArguments = Ptr(10)
		opts.MaxInlineTopLevel = Ptr(20)
		input := "SELECT a, b, c FROM ( SELECT (e+f) AS a, (m+o) AS b FROM d) WHERE (a != b) OR (c IS NULL AND a == b)"
		expected := strings.Join([]string{
			"SELECT a, b, c",
			"FROM (",
			"  SELECT",
			"    (e + f) AS a,",
			"    (m + o) AS b",
			"  FROM d",
			")",
			"WHERE",
			"  (a != b)",
			"  OR (",
			"    c IS NULL",
			"    AND a == b",
			"  )",
		}, "\n")
		require.Equal(t, expected, String(opts, input))
	})

	t.Run("short with clause stays inline", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineBlock = 80
		opts.MaxInlineArguments = Ptr(80)
		opts.MaxInlineTopLevel = Ptr(80)
		input := "WITH a AS ( SELECT a, b, c FROM t WHERE a > 100 ) SELECT b, field FROM a, aa;"
		expected := strings.Join([]string{
			"WITH a AS (SELECT a, b, c FROM t WHERE a > 100)",
			"SELECT b, field",
			"FROM a, aa;",
		}, "\n")
		require.Equal(t, expected, String(opts, input))
	})

	t.Run("insert select pipeline", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineBlock = 50
		opts.MaxInlineArguments = Ptr(50)
		opts.MaxInlineTopLevel = Ptr(50)
		input := "INSERT INTO t(id, a, min, max) SELECT input.id, input.a, input.min, input.max FROM ( SELECT id, a, min, max FROM foo WHERE a IN ('a', 'b') ) AS input WHERE (SELECT true FROM condition) RETURNING *;"
		expected := strings.Join([]string{
			"INSERT INTO t(id, a, min, max)",
			"SELECT input.id, input.a, input.min, input.max",
			"FROM (",
			"  SELECT id, a, min, max",
			"  FROM foo",
			"  WHERE a IN ('a', 'b')",
			") AS input",
			"WHERE (SELECT true FROM condition)",
			"RETURNING *;",
		}, "\n")
		require.Equal(t, expected, String(opts, input))
	})

	t.Run("update with case and subquery blocks", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineBlock = 60
		opts.MaxInlineArguments = Ptr(60)
		opts.MaxInlineTopLevel = Ptr(60)
		input := "UPDATE t SET o = ($5 + $6 + $7 + $8),a = CASE WHEN $2 THEN NULL ELSE COALESCE($3, b) END, " +
			"d = CASE WHEN $8 THEN NULL ELSE COALESCE($9, dddddddd) + bbbbb END, " +
			"e = (SELECT true FROM bar) WHERE id = $1"
		expected := strings.Join([]string{
			"UPDATE t",
			"SET",
			"  o = ($5 + $6 + $7 + $8),",
			"  a = CASE WHEN $2 THEN NULL ELSE COALESCE($3, b) END,",
			"  d = CASE",
			"    WHEN $8 THEN NULL",
			"    ELSE COALESCE($9, dddddddd) + bbbbb",
			"  END,",
			"  e = (SELECT true FROM bar)",
			"WHERE id = $1",
		}, "\n")
		require.Equal(t, expected, String(opts, input))
	})
}

func TestFormat_maxInlineBlock(t *testing.T) {
	t.Run("larger budget keeps bigger blocks inline", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineBlock = 100
		input := "INSERT INTO some_table (id_product, id_shop, id_currency, id_country, id_registration);"
		expected := strings.Join([]string{
			"INSERT INTO",
			"  some_table (id_product, id_shop, id_currency, id_country, id_registration);",
		}, "\n")
		require.Equal(t, expected, String(opts, input))
	})

	t.Run("smaller budget splits blocks", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineBlock = 10
		expected := strings.Join([]string{
			"SELECT",
			"  (",
			"    aaaa + bbbb",
			"  );",
		}, "\n")
		require.Equal(t, expected, String(opts, "SELECT (aaaa + bbbb);"))
	})

	t.Run("array values split against the block budget", func(t *testing.T) {
		opts := Defaults
		opts.MaxInlineBlock = 10
		opts.MaxInlineTopLevel = Ptr(50)
		input := " INSERT INTO t VALUES('a', ARRAY[0, 1,2,3], ARRAY[['a','b'],    ['c' ,'d']]);"
		expected := strings.Join([]string{
			"INSERT INTO t",
			"VALUES (",
			"  'a',",
			"  ARRAY[0, 1, 2, 3],",
			"  ARRAY[",
			"    ['a', 'b'],",
			"    ['c', 'd']",
			"  ]",
			");",
		}, "\n")
		require.Equal(t, expected, String(opts, input))
	})
}

func TestFormat_joinsAsTopLevel(t *testing.T) {
	opts := Defaults
	opts.JoinsAsTopLevel = true
	opts.MaxInlineArguments = Ptr(40)
	opts.MaxInlineTopLevel = Ptr(40)

	input := "SELECT a FROM customers INNER ANY JOIN orders ON customers.customer_id = orders.customer_id LEFT SEMI JOIN foo ON foo.id = customers.id;"
	expected := strings.Join([]string{
		"SELECT a",
		"FROM customers",
		"INNER ANY JOIN",
		"  orders ON customers.customer_id = orders.customer_id",
		"LEFT SEMI JOIN",
		"  foo ON foo.id = customers.id;",
	}, "\n")
	require.Equal(t, expected, String(opts, input))
}

func TestFormat_caseInsideOrderBy(t *testing.T) {
	opts := Defaults
	opts.MaxInlineBlock = 80
	opts.MaxInlineArguments = Ptr(80)

	input := "SELECT a, created_at FROM b ORDER BY (CASE $3 WHEN 'created_at_asc' THEN created_at END) ASC, (CASE $3 WHEN 'created_at_desc' THEN created_at END) DESC;"
	expected := strings.Join([]string{
		"SELECT",
		"  a, created_at",
		"FROM",
		"  b",
		"ORDER BY",
		"  (CASE $3 WHEN 'created_at_asc' THEN created_at END) ASC,",
		"  (CASE $3 WHEN 'created_at_desc' THEN created_at END) DESC;",
	}, "\n")
	require.Equal(t, expected, String(opts, input))
}
