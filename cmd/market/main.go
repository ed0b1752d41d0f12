package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"rpg_market/internal/config"
	"rpg_market/internal/models"
)

const usage = `Usage: market <group> <command> [flags]

Groups:
  report     read-only listings, counts and samples
  analytics  aggregation reports
  check      data integrity checks
  maintain   destructive maintenance (dry-run unless -execute)

Run "market <group>" to list the group's commands.
`

type application struct {
	infoLog  *log.Logger
	errorLog *log.Logger
	db       *models.MongoDB
	out      io.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		errorLog.Fatal(err)
	}

	db, err := models.OpenMongoDB(cfg.MongoURI, cfg.Database, cfg.QueryTimeout)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer db.Close()
	infoLog.Printf("Connected to database %s", cfg.Database)

	app := &application{
		infoLog:  infoLog,
		errorLog: errorLog,
		db:       db,
		out:      os.Stdout,
	}

	if err := app.run(os.Args[1:]); err != nil {
		errorLog.Fatal(err)
	}
}

func (app *application) run(args []string) error {
	switch args[0] {
	case "report":
		return app.runReport(args[1:])
	case "analytics":
		return app.runAnalytics(args[1:])
	case "check":
		return app.runCheck(args[1:])
	case "maintain":
		return app.runMaintain(args[1:])
	default:
		return fmt.Errorf("unknown group %q\n%s", args[0], usage)
	}
}
