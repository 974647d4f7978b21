package db

// Registers the "pgx", "mysql" and "sqlite" drivers with "database/sql".
import (
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)
