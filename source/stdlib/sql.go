package stdlib

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/microsoft/go-mssqldb" // SQL Server
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite
)

// The payload of a database value is a *sql.DB.
var DATABASE = values.New("database")

var (
	drivers = map[string]string{"Firebird SQL": "firebirdsql", "MariaDB": "mysql", "MySQL": "mysql",
		"Oracle": "oracle", "Postgres": "postgres", "SQL Server": "sqlserver", "SQLite": "sqlite"}
)

// The friendly names of the drivers, sorted.
func Drivers() []string {
	dr := []string{}
	for k := range drivers {
		dr = append(dr, k)
	}
	sort.Strings(dr)
	return dr
}

// Lets a script open a database and talk to it. Rows come back as arrays of strings, with
// NULL as the empty string.
//
//	sql.drivers -> array!string
//	sql.open string string -> database
//	database.exec database string [array!string] -> int
//	database.query database string [array!string] -> array!array!string
//	database.scalar database string -> string
//	database.close database -> void
func registerSQL(b *registry.Builder) {
	stringArray := values.Instantiate(values.ARRAY, values.STRING)
	rows := values.Instantiate(values.ARRAY, stringArray)
	b.Function("sql.drivers", []values.Type{}, stringArray, func(args []values.Value) (values.Value, error) {
		names := []values.Value{}
		for _, name := range Drivers() {
			names = append(names, values.Str(name))
		}
		return MakeArray(values.STRING, names...), nil
	})
	b.Function("sql.open", []values.Type{values.STRING, values.STRING}, DATABASE, func(args []values.Value) (values.Value, error) {
		driver := args[0].V.(string)
		if name, ok := drivers[driver]; ok {
			driver = name
		}
		db, e := sql.Open(driver, args[1].V.(string))
		if e != nil {
			return values.Value{}, sqlErr("sql.open", e)
		}
		// One connection, so that in-memory databases are the same database from one
		// statement to the next.
		db.SetMaxOpenConns(1)
		if e := db.Ping(); e != nil {
			db.Close()
			return values.Value{}, sqlErr("sql.open", e)
		}
		return values.Value{T: DATABASE, V: db}, nil
	})
	exec := func(args []values.Value) (values.Value, error) {
		result, e := args[0].V.(*sql.DB).Exec(args[1].V.(string), queryArgs(args)...)
		if e != nil {
			return values.Value{}, sqlErr("database.exec", e)
		}
		n, e := result.RowsAffected()
		if e != nil {
			return values.Int(0), nil
		}
		return values.Int(int(n)), nil
	}
	b.Function("database.exec", []values.Type{DATABASE, values.STRING}, values.INT, exec)
	b.Function("database.exec", []values.Type{DATABASE, values.STRING, stringArray}, values.INT, exec)
	query := func(args []values.Value) (values.Value, error) {
		table, e := runQuery(args[0].V.(*sql.DB), args[1].V.(string), queryArgs(args))
		if e != nil {
			return values.Value{}, sqlErr("database.query", e)
		}
		result := make([]values.Value, 0, len(table))
		for _, row := range table {
			result = append(result, MakeArray(values.STRING, row...))
		}
		return MakeArray(stringArray, result...), nil
	}
	b.Function("database.query", []values.Type{DATABASE, values.STRING}, rows, query)
	b.Function("database.query", []values.Type{DATABASE, values.STRING, stringArray}, rows, query)
	b.Function("database.scalar", []values.Type{DATABASE, values.STRING}, values.STRING, func(args []values.Value) (values.Value, error) {
		table, e := runQuery(args[0].V.(*sql.DB), args[1].V.(string), nil)
		if e != nil {
			return values.Value{}, sqlErr("database.scalar", e)
		}
		if len(table) == 0 || len(table[0]) == 0 {
			return values.Str(""), nil
		}
		return table[0][0], nil
	})
	b.Function("database.close", []values.Type{DATABASE}, values.VOID, func(args []values.Value) (values.Value, error) {
		if e := args[0].V.(*sql.DB).Close(); e != nil {
			return values.Value{}, sqlErr("database.close", e)
		}
		return values.VOID_VALUE, nil
	})
}

// The optional third argument of 'exec' and 'query' supplies the query's parameters.
func queryArgs(args []values.Value) []any {
	if len(args) < 3 {
		return nil
	}
	goArgs := []any{}
	for it := values.NewArrayIterator(args[2].V.(*values.Array)); it.Unfinished(); {
		goArgs = append(goArgs, it.NextValue().V)
	}
	return goArgs
}

func runQuery(db *sql.DB, query string, args []any) ([][]values.Value, error) {
	rows, e := db.Query(query, args...)
	if e != nil {
		return nil, e
	}
	defer rows.Close()
	columns, e := rows.Columns()
	if e != nil {
		return nil, e
	}
	table := [][]values.Value{}
	for rows.Next() {
		cells := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range cells {
			pointers[i] = &cells[i]
		}
		if e := rows.Scan(pointers...); e != nil {
			return nil, e
		}
		row := make([]values.Value, len(cells))
		for i, cell := range cells {
			row[i] = values.Str(cellToString(cell))
		}
		table = append(table, row)
	}
	return table, rows.Err()
}

func cellToString(cell any) string {
	switch cell := cell.(type) {
	case nil:
		return ""
	case []byte:
		return string(cell)
	case string:
		return cell
	default:
		return fmt.Sprint(cell)
	}
}

func sqlErr(fname string, e error) error {
	return err.CreateErr("eval/sql", token.Position{}, fname, e.Error())
}
