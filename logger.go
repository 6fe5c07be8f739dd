package nibtb

import (
	"bytes"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// DataLogger is the general definition of a logger that records
// per-scenario diagnostic events to file, whether it writes CSV or a
// database. A scenario run with a nil logger behaves identically, just
// without the detail trail: ScenarioResult already carries every
// number a fitting iteration needs.
type DataLogger interface {
	// SetBasePath sets the base path of the logger and the scenario
	// instance ID the events it is about to receive belong to.
	SetBasePath(path string, instanceID int)
	// Init initializes the logger, creating whatever file or table
	// structure WriteTransmission/WriteReactor/WriteMovement expect.
	Init() error
	// WriteTransmission records transmission events (cow-to-cow,
	// cow-to-badger, badger-to-cow) as they occur.
	WriteTransmission(c <-chan TransmissionEvent)
	// WriteReactor records every reactor detected during a whole-herd
	// test or at slaughter.
	WriteReactor(c <-chan ReactorEvent)
	// WriteMovement records every animal movement carried out during
	// the movement phase.
	WriteMovement(c <-chan MovementEvent)
}

// TransmissionEvent encapsulates one infection-tree edge as it is
// created, for loggers that want a full transmission trail in
// addition to the final InfectionTree.
type TransmissionEvent struct {
	InstanceID int
	Date       int
	Kind       EventKind
	SourceID   int
	TargetID   int
}

// ReactorEvent encapsulates one cow testing positive during a
// whole-herd test or being detected at slaughter.
type ReactorEvent struct {
	InstanceID int
	Date       int
	FarmID     int
	CowID      int
}

// MovementEvent encapsulates one batch of animals moved between
// farms during the movement phase.
type MovementEvent struct {
	InstanceID         int
	Date               int
	DepartureFarmID    int
	DestinationFarmID  int
	NumAnimals         int
	NumInfectedAnimals int
}

// CSVLogger is a DataLogger that writes diagnostic events as
// comma-delimited files, one per event kind.
type CSVLogger struct {
	transmissionPath string
	reactorPath      string
	movementPath     string
}

// NewCSVLogger creates a new logger that writes data into CSV files.
func NewCSVLogger(basepath string, instanceID int) *CSVLogger {
	l := new(CSVLogger)
	l.SetBasePath(basepath, instanceID)
	return l
}

// SetBasePath sets the base path of the logger.
func (l *CSVLogger) SetBasePath(basepath string, instanceID int) {
	if info, err := os.Stat(basepath); err == nil && info.IsDir() {
		basepath += "log"
	}
	trimmed := strings.TrimSuffix(basepath, ".")
	l.transmissionPath = trimmed + fmt.Sprintf(".%03d.trans.csv", instanceID)
	l.reactorPath = trimmed + fmt.Sprintf(".%03d.reactor.csv", instanceID)
	l.movementPath = trimmed + fmt.Sprintf(".%03d.movement.csv", instanceID)
}

// Init creates the CSV files and writes their header row.
func (l *CSVLogger) Init() error {
	newFile := func(path, header string) error {
		var b bytes.Buffer
		b.WriteString(header)
		return NewFile(path, b.Bytes())
	}
	if err := newFile(l.transmissionPath, "instance,date,kind,sourceID,targetID\n"); err != nil {
		return err
	}
	if err := newFile(l.reactorPath, "instance,date,farmID,cowID\n"); err != nil {
		return err
	}
	if err := newFile(l.movementPath, "instance,date,departureFarmID,destinationFarmID,numAnimals,numInfected\n"); err != nil {
		return err
	}
	return nil
}

// WriteTransmission appends one row per transmission event.
func (l *CSVLogger) WriteTransmission(c <-chan TransmissionEvent) {
	const template = "%d,%d,%d,%d,%d\n"
	var b bytes.Buffer
	for e := range c {
		fmt.Fprintf(&b, template, e.InstanceID, e.Date, e.Kind, e.SourceID, e.TargetID)
	}
	AppendToFile(l.transmissionPath, b.Bytes())
}

// WriteReactor appends one row per reactor event.
func (l *CSVLogger) WriteReactor(c <-chan ReactorEvent) {
	const template = "%d,%d,%d,%d\n"
	var b bytes.Buffer
	for e := range c {
		fmt.Fprintf(&b, template, e.InstanceID, e.Date, e.FarmID, e.CowID)
	}
	AppendToFile(l.reactorPath, b.Bytes())
}

// WriteMovement appends one row per movement event.
func (l *CSVLogger) WriteMovement(c <-chan MovementEvent) {
	const template = "%d,%d,%d,%d,%d,%d\n"
	var b bytes.Buffer
	for e := range c {
		fmt.Fprintf(&b, template, e.InstanceID, e.Date, e.DepartureFarmID, e.DestinationFarmID, e.NumAnimals, e.NumInfectedAnimals)
	}
	AppendToFile(l.movementPath, b.Bytes())
}

// SQLiteLogger is a DataLogger that writes diagnostic events to a
// SQLite database, one table per event kind per scenario instance, so
// that many scenario processes sharing a results directory never
// collide on table names.
type SQLiteLogger struct {
	transmissionPath string
	reactorPath      string
	movementPath     string
	instanceID       int
}

// NewSQLiteLogger creates a new logger that writes to SQLite
// databases.
func NewSQLiteLogger(basepath string, instanceID int) *SQLiteLogger {
	l := new(SQLiteLogger)
	l.SetBasePath(basepath, instanceID)
	return l
}

// SetBasePath sets the base path of the logger.
func (l *SQLiteLogger) SetBasePath(basepath string, instanceID int) {
	if info, err := os.Stat(basepath); err == nil && info.IsDir() {
		basepath += fmt.Sprintf("log.%03d", instanceID)
	}
	trimmed := strings.TrimSuffix(basepath, ".")
	l.transmissionPath = trimmed + ".trans.db"
	l.reactorPath = trimmed + ".reactor.db"
	l.movementPath = trimmed + ".movement.db"
	l.instanceID = instanceID
}

// Init creates this instance's tables in each database.
func (l *SQLiteLogger) Init() error {
	newTable := func(path, tableName, cols string) error {
		db, err := OpenSQLiteDBOptimized(path)
		if err != nil {
			return err
		}
		defer db.Close()
		fullTableName := fmt.Sprintf("%s%03d", tableName, l.instanceID)
		sqlStmt := fmt.Sprintf("create table %s %s;", fullTableName, cols)
		if _, err := db.Exec(sqlStmt); err != nil {
			return fmt.Errorf("%q: %s", err, sqlStmt)
		}
		return nil
	}
	if err := newTable(l.transmissionPath, "Transmission",
		"(id integer not null primary key, date int, kind int, sourceID int, targetID int)"); err != nil {
		return err
	}
	if err := newTable(l.reactorPath, "Reactor",
		"(id integer not null primary key, date int, farmID int, cowID int)"); err != nil {
		return err
	}
	if err := newTable(l.movementPath, "Movement",
		"(id integer not null primary key, date int, departureFarmID int, destinationFarmID int, numAnimals int, numInfected int)"); err != nil {
		return err
	}
	return nil
}

// WriteTransmission inserts one row per transmission event inside a
// single transaction.
func (l *SQLiteLogger) WriteTransmission(c <-chan TransmissionEvent) {
	tableName := fmt.Sprintf("Transmission%03d", l.instanceID)
	db, err := OpenSQLiteDBOptimized(l.transmissionPath)
	if err != nil {
		log.Fatal(err)
		return
	}
	defer db.Close()
	tx, err := db.Begin()
	if err != nil {
		log.Fatal(err)
		return
	}
	stmt, err := tx.Prepare("insert into " + tableName + "(date, kind, sourceID, targetID) values(?, ?, ?, ?)")
	if err != nil {
		log.Fatal(err)
		return
	}
	defer stmt.Close()
	for e := range c {
		if _, err := stmt.Exec(e.Date, int(e.Kind), e.SourceID, e.TargetID); err != nil {
			log.Fatal(err)
			return
		}
	}
	tx.Commit()
}

// WriteReactor inserts one row per reactor event inside a single
// transaction.
func (l *SQLiteLogger) WriteReactor(c <-chan ReactorEvent) {
	tableName := fmt.Sprintf("Reactor%03d", l.instanceID)
	db, err := OpenSQLiteDBOptimized(l.reactorPath)
	if err != nil {
		log.Fatal(err)
		return
	}
	defer db.Close()
	tx, err := db.Begin()
	if err != nil {
		log.Fatal(err)
		return
	}
	stmt, err := tx.Prepare("insert into " + tableName + "(date, farmID, cowID) values(?, ?, ?)")
	if err != nil {
		log.Fatal(err)
		return
	}
	defer stmt.Close()
	for e := range c {
		if _, err := stmt.Exec(e.Date, e.FarmID, e.CowID); err != nil {
			log.Fatal(err)
			return
		}
	}
	tx.Commit()
}

// WriteMovement inserts one row per movement event inside a single
// transaction.
func (l *SQLiteLogger) WriteMovement(c <-chan MovementEvent) {
	tableName := fmt.Sprintf("Movement%03d", l.instanceID)
	db, err := OpenSQLiteDBOptimized(l.movementPath)
	if err != nil {
		log.Fatal(err)
		return
	}
	defer db.Close()
	tx, err := db.Begin()
	if err != nil {
		log.Fatal(err)
		return
	}
	stmt, err := tx.Prepare("insert into " + tableName + "(date, departureFarmID, destinationFarmID, numAnimals, numInfected) values(?, ?, ?, ?, ?)")
	if err != nil {
		log.Fatal(err)
		return
	}
	defer stmt.Close()
	for e := range c {
		if _, err := stmt.Exec(e.Date, e.DepartureFarmID, e.DestinationFarmID, e.NumAnimals, e.NumInfectedAnimals); err != nil {
			log.Fatal(err)
			return
		}
	}
	tx.Commit()
}

// OpenSQLiteDBOptimized establishes a database connection using WAL
// and exclusive locking.
func OpenSQLiteDBOptimized(path string) (*sql.DB, error) {
	return OpenSQLiteDB(path, "?_journal=WAL&_locking=EXCLUSIVE&_sync=NORMAL")
}

// OpenSQLiteDB establishes a database connection using the given
// connection string.
func OpenSQLiteDB(path, connectionString string) (*sql.DB, error) {
	dsn := "file:%s%s"
	db, err := sql.Open("sqlite3", fmt.Sprintf(dsn, path, connectionString))
	if err != nil {
		return nil, err
	}
	return db, nil
}
