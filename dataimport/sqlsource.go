package dataimport

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"

	// CutoffTableName is the table the experiment runner stores
	// its per-scale results into
	CutoffTableName = "cutoff_analysis"
)

type DBConf struct {
	Host   string `json:"host"`
	User   string `json:"user"`
	Passwd string `json:"passwd"`
	Name   string `json:"db"`
}

// SQLSource reads benchmark rows from the `cutoff_analysis` table.
// The database is opened only for the duration of Rows.
type SQLSource struct {
	driver  string
	dsn     string
	orderBy string
	name    string
}

func (src *SQLSource) String() string {
	return fmt.Sprintf("%s:%s", src.driver, src.name)
}

func (src *SQLSource) Rows(ctx context.Context) ([]Row, error) {
	db, err := sql.Open(src.driver, src.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %s", stats.ErrMalformedInput, src, err)
	}
	defer db.Close()
	rows, err := db.QueryContext(
		ctx,
		fmt.Sprintf(
			"SELECT %s FROM %s ORDER BY %s",
			strings.Join(RequiredColumns, ", "), CutoffTableName, src.orderBy,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch benchmark rows: %s", stats.ErrMalformedInput, err)
	}
	defer rows.Close()
	ans := make([]Row, 0, 8)
	for rows.Next() {
		vals := make([]sql.NullString, len(RequiredColumns))
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: failed to fetch benchmark rows: %s", stats.ErrMalformedInput, err)
		}
		row := make(Row, len(RequiredColumns))
		for i, v := range vals {
			if v.Valid && strings.TrimSpace(v.String) != "" {
				row[RequiredColumns[i]] = strings.TrimSpace(v.String)
			}
		}
		ans = append(ans, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to fetch benchmark rows: %s", stats.ErrMalformedInput, err)
	}
	log.Debug().Str("source", src.String()).Int("numRows", len(ans)).Msg("read SQL source")
	return ans, nil
}

var sqliteURIEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// NewSQLiteSource creates a source reading a local SQLite database file.
// Rows are returned in their insertion order.
func NewSQLiteSource(path string) *SQLSource {
	return &SQLSource{
		driver:  DriverSQLite,
		dsn:     "file:" + sqliteURIEscaper.Replace(path) + "?mode=ro",
		orderBy: "rowid",
		name:    path,
	}
}

// NewMySQLSource creates a source reading from a MySQL/MariaDB database
// where `cutoff_analysis` has an auto-increment `id` column.
func NewMySQLSource(conf DBConf) *SQLSource {
	mconf := mysql.NewConfig()
	mconf.Net = "tcp"
	mconf.Addr = conf.Host
	mconf.User = conf.User
	mconf.Passwd = conf.Passwd
	mconf.DBName = conf.Name
	mconf.ParseTime = true
	mconf.Loc = time.Local
	return &SQLSource{
		driver:  DriverMySQL,
		dsn:     mconf.FormatDSN(),
		orderBy: "id",
		name:    fmt.Sprintf("%s/%s", conf.Host, conf.Name),
	}
}

// ParseMySQLDSN converts a driver DSN (user:passwd@tcp(host:port)/db)
// into a DBConf
func ParseMySQLDSN(dsn string) (DBConf, error) {
	mconf, err := mysql.ParseDSN(dsn)
	if err != nil {
		return DBConf{}, fmt.Errorf("%w: invalid MySQL DSN: %s", stats.ErrConfiguration, err)
	}
	return DBConf{
		Host:   mconf.Addr,
		User:   mconf.User,
		Passwd: mconf.Passwd,
		Name:   mconf.DBName,
	}, nil
}
