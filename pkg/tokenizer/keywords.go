package tokenizer

import (
	"sort"
	"strings"
)

// The reserved tables are the union of every supported dialect:
// PostgreSQL, MySQL/MariaDB, SQLite, SQL Server, Oracle, ClickHouse,
// and DuckDB. There is no dialect selector; contextual rules (the "."
// guard, ON UPDATE as a plain phrase, BETWEEN..AND) disambiguate the
// few collisions. The tables are append-only: removing a
// classification is a breaking change.

// reservedTopLevel keywords start a clause: a line break before them
// and a new indentation scope after them.
var reservedTopLevel = []string{
	"ALTER DATABASE",
	"ALTER TABLE",
	"ALTER VIEW",
	"DELETE FROM",
	"DROP INDEX IF EXISTS",
	"DROP INDEX",
	"DROP TABLE IF EXISTS",
	"DROP TABLE",
	"DROP VIEW IF EXISTS",
	"DROP VIEW",
	"FETCH FIRST",
	"FETCH NEXT",
	"FOR KEY SHARE",
	"FOR NO KEY UPDATE",
	"FOR SHARE",
	"FOR UPDATE",
	"FROM",
	"GROUP BY",
	"HAVING",
	"INSERT INTO",
	"INSERT",
	"LIMIT",
	"MODIFY",
	"ON CONFLICT",
	"ON DUPLICATE KEY UPDATE",
	"ORDER BY",
	"PARTITION BY",
	"PARTITIONED BY",
	"PREWHERE",
	"QUALIFY",
	"RETURNING",
	"SELECT DISTINCT",
	"SELECT TOP",
	"SELECT",
	"SET CURRENT SCHEMA",
	"SET SCHEMA",
	"SET",
	"UPDATE",
	"USING",
	"VALUES",
	"WHERE",
	"WINDOW",
	"WITH",
}

// reservedTopLevelNoIndent keywords start a line at the statement's
// base indentation without opening a scope.
var reservedTopLevelNoIndent = []string{
	"EXCEPT ALL",
	"EXCEPT",
	"GO",
	"INTERSECT ALL",
	"INTERSECT",
	"MINUS",
	"UNION ALL",
	"UNION DISTINCT",
	"UNION",
}

// reservedNewline keywords start a line within the current scope.
var reservedNewline = []string{
	"ADD COLUMN",
	"ADD CONSTRAINT",
	"ADD PARTITION",
	"ALTER COLUMN",
	"AND",
	"CROSS APPLY",
	"DROP COLUMN",
	"DROP CONSTRAINT",
	"DROP PARTITION",
	"ELSE",
	"LATERAL VIEW",
	"OR",
	"OUTER APPLY",
	"WHEN",
	"XOR",

	// Join variants across the dialect union, including the ClickHouse
	// strictness prefixes and DuckDB's ASOF/POSITIONAL joins.
	"ALL JOIN",
	"ANTI JOIN",
	"ANY JOIN",
	"ASOF JOIN",
	"CROSS JOIN",
	"FULL ANY JOIN",
	"FULL JOIN",
	"FULL OUTER JOIN",
	"GLOBAL ALL JOIN",
	"GLOBAL ANY JOIN",
	"GLOBAL JOIN",
	"INNER ALL JOIN",
	"INNER ANY JOIN",
	"INNER JOIN",
	"JOIN",
	"LEFT ANTI JOIN",
	"LEFT ANY JOIN",
	"LEFT ASOF JOIN",
	"LEFT JOIN",
	"LEFT OUTER JOIN",
	"LEFT SEMI JOIN",
	"NATURAL FULL JOIN",
	"NATURAL JOIN",
	"NATURAL LEFT JOIN",
	"NATURAL LEFT OUTER JOIN",
	"NATURAL RIGHT JOIN",
	"NATURAL RIGHT OUTER JOIN",
	"PASTE JOIN",
	"POSITIONAL JOIN",
	"RIGHT ANTI JOIN",
	"RIGHT ANY JOIN",
	"RIGHT JOIN",
	"RIGHT OUTER JOIN",
	"RIGHT SEMI JOIN",
	"SEMI JOIN",
	"STRAIGHT_JOIN",
}

// reservedPlain keywords carry no layout effect of their own; they are
// recognized so case conversion applies. CASE and END are listed here
// but the formatter treats them as block delimiters.
var reservedPlain = []string{
	"ACCESSIBLE", "ACTION", "AGAINST", "AGGREGATE", "ALGORITHM", "ALL",
	"ALTER", "ANALYZE", "ANY", "AS", "ASC", "AUTO_INCREMENT", "BACKUP",
	"BEGIN", "BETWEEN", "BINLOG", "BOTH", "BY", "CASCADE", "CASE",
	"CAST", "CHANGE", "CHANGED", "CHARACTER SET", "CHARSET", "CHECK",
	"CHECKSUM", "COLLATE", "COLLATION", "COLUMN", "COLUMNS", "COMMENT",
	"COMMIT", "COMMITTED", "COMPRESSED", "COMPRESSION", "CONCURRENT",
	"CONSTRAINT", "CONTAINS", "CONVERT", "CREATE", "CROSS",
	"CURRENT_TIMESTAMP", "DATABASE", "DATABASES", "DAY", "DEFAULT",
	"DEFINER", "DELAYED", "DELETE", "DESC", "DESCRIBE", "DETERMINISTIC",
	"DISTINCT", "DISTINCTROW", "DIV", "DO NOTHING", "DO UPDATE", "DO",
	"DROP", "DUMPFILE", "DUPLICATE", "DYNAMIC", "ENCLOSED", "END",
	"ENGINE", "ENGINES", "ESCAPE", "ESCAPED", "EVENTS", "EXEC",
	"EXECUTE", "EXISTS", "EXPLAIN", "EXTENDED", "FAST", "FETCH",
	"FIELDS", "FILE", "FINAL", "FIRST", "FIXED", "FLUSH", "FOLLOWING",
	"FOR", "FORCE", "FOREIGN", "FULL", "FULLTEXT", "FUNCTION", "GLOBAL",
	"GRANT", "GRANTS", "GROUP_CONCAT", "HEAP", "HIGH_PRIORITY", "HOSTS",
	"HOUR", "IDENTIFIED", "IF NOT EXISTS", "IF EXISTS", "IF", "IFNULL",
	"IGNORE", "ILIKE", "IN", "INDEX", "INDEXES", "INFILE", "INNER",
	"INSERT_ID", "INTERVAL", "INTO", "INVOKER", "IS", "ISOLATION",
	"KEY", "KEYS", "KILL", "LANGUAGE", "LAST", "LEADING", "LEFT",
	"LEVEL", "LIKE", "LINEAR", "LINES", "LOAD", "LOCAL", "LOCK",
	"LOCKED", "LOCKS", "LOGS", "LOW_PRIORITY", "MASTER", "MATCH",
	"MATERIALIZED", "MEDIUM", "MERGE", "MINUTE", "MODE", "MONTH",
	"NAMES", "NATURAL", "NOT", "NOWAIT", "NULL", "NULLS", "OF",
	"OFFSET", "ON DELETE", "ON UPDATE", "ON", "ONLY", "OPEN",
	"OPTIMIZE", "OPTION", "OPTIONALLY", "OUT", "OUTER", "OUTFILE",
	"OVER", "PARTIAL", "PARTITION", "PARTITIONS", "PASSWORD",
	"PRECEDING", "PRIMARY", "PRIVILEGES", "PROCEDURE", "PROCESS",
	"PROCESSLIST", "PURGE", "QUICK", "RANGE", "READ", "RECURSIVE",
	"REFERENCES", "REGEXP", "RELOAD", "RENAME", "REPAIR", "REPEATABLE",
	"REPLACE", "REPLICATION", "RESET", "RESTORE", "RESTRICT", "RETURN",
	"RETURNS", "REVOKE", "RIGHT", "RLIKE", "ROLLBACK", "ROW", "ROWS",
	"ROW_FORMAT", "SAMPLE", "SECOND", "SECURITY", "SEPARATOR",
	"SERIALIZABLE", "SESSION", "SETTINGS", "SHARE", "SHOW", "SHUTDOWN",
	"SKIP", "SLAVE", "SONAME", "START", "STARTING", "STATUS", "STOP",
	"STORAGE", "STORED", "TABLE", "TABLES", "TEMPORARY", "TERMINATED",
	"THEN", "TIES", "TO", "TRAILING", "TRANSACTION", "TRIGGER", "TRUE",
	"FALSE", "TRUNCATE", "TYPE", "TYPES", "UNBOUNDED", "UNCOMMITTED",
	"UNIQUE", "UNLOCK", "UNSIGNED", "USAGE", "USE", "VARIABLES", "VIEW",
	"WORK", "WRITE", "YEAR",
}

type phrase struct {
	words []string
	kind  Kind
	join  bool
}

// phraseIndex maps a lowercased first word to every reserved phrase
// starting with it. Candidates are ordered by classification priority
// (top level, newline, no-indent, plain) and, within a class, longest
// phrase first, so greedy matching picks SET CURRENT SCHEMA over SET.
var phraseIndex = buildPhraseIndex()

func buildPhraseIndex() map[string][]phrase {
	index := make(map[string][]phrase)
	add := func(entries []string, kind Kind) {
		grouped := make(map[string][]phrase)
		for _, entry := range entries {
			words := strings.Fields(strings.ToLower(entry))
			grouped[words[0]] = append(grouped[words[0]], phrase{
				words: words,
				kind:  kind,
				join:  kind == ReservedNewline && words[len(words)-1] == "join",
			})
		}
		for first, phrases := range grouped {
			sort.SliceStable(phrases, func(i, j int) bool {
				return len(phrases[i].words) > len(phrases[j].words)
			})
			index[first] = append(index[first], phrases...)
		}
	}

	add(reservedTopLevel, ReservedTopLevel)
	add(reservedNewline, ReservedNewline)
	add(reservedTopLevelNoIndent, ReservedTopLevelNoIndent)
	add(reservedPlain, Reserved)
	return index
}

func phrasesFor(firstWord string) []phrase {
	return phraseIndex[firstWord]
}

// multiCharOperators holds every operator longer than one character,
// including the PostgreSQL JSON/range/geometric sets, pg_trgm, and the
// ClickHouse/DuckDB additions. Matching is longest-first.
var multiCharOperators = []string{
	"<->>>", "<<<->",
	"!~~*", "~>=~", "~<=~", "<<->", "<->>",
	"!~~", "!~*", "#>>", "&<|", "<<|", "<<=", "<->", ">>=", "->>",
	"-|-", "?||", "?-|", "@@@", "@-@", "|&>", "|>>", "|>&", "||/",
	"~>~", "~<~", "~~*", "*<>", "*<=", "*>=", "<<%", "%>>",
	"!!", "!~", "##", "#>", "#-", "&<", "&>", "&&", "*<", "*>", "*=",
	"<<", "<@", "<^", "<=", "<>", ">=", ">>", ">^", "->", "?|", "?-",
	"?#", "?&", "@@", "@>", "@?", "^@", "|/", "||", "~=", "~*", "~~",
	"==", "!=", "!<", "!>", "::", ":=", "<%", "%>",
}

var operatorsByLength = buildOperatorSets()

func buildOperatorSets() []map[string]struct{} {
	sets := make([]map[string]struct{}, 6)
	for i := range sets {
		sets[i] = make(map[string]struct{})
	}
	for _, op := range multiCharOperators {
		sets[len(op)][op] = struct{}{}
	}
	return sets
}

// matchOperator returns the longest multi-character operator prefix of
// s, or the empty string when none matches.
func matchOperator(s string) string {
	for length := 5; length >= 2; length-- {
		if length > len(s) {
			continue
		}
		if _, ok := operatorsByLength[length][s[:length]]; ok {
			return s[:length]
		}
	}
	return ""
}
