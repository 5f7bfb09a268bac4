// Package dbcmd implements the "db" maintenance subcommands for the badger
// store.
package dbcmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"postboard/app/repositories"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrUsage is returned when the arguments do not form a valid command.
var ErrUsage = errors.New("invalid db command")

// Runner executes db subcommands against the badger directory at Path.
type Runner struct {
	Path      string
	BackupDir string
	In        io.Reader
	Out       io.Writer
	Log       zerolog.Logger
	Now       func() time.Time
}

// NewRunner returns a Runner wired to the process stdio.
func NewRunner(path string, log zerolog.Logger) *Runner {
	return &Runner{
		Path:      path,
		BackupDir: filepath.Join(filepath.Dir(path), "backups"),
		In:        os.Stdin,
		Out:       os.Stdout,
		Log:       log,
		Now:       time.Now,
	}
}

// Run handles db subcommands. A -y flag anywhere skips confirmation.
func (c *Runner) Run(args []string) error {
	yes := false
	rest := args[:0:0]
	for _, a := range args {
		if a == "-y" || a == "--yes" {
			yes = true
			continue
		}
		rest = append(rest, a)
	}

	if len(rest) < 1 {
		c.PrintHelp()
		return ErrUsage
	}

	switch rest[0] {
	case "backup":
		target := ""
		if len(rest) > 1 {
			target = rest[1]
		}
		return c.backup(target)
	case "restore":
		if len(rest) < 2 {
			fmt.Fprintln(c.Out, "Error: backup file path required for restore")
			return ErrUsage
		}
		return c.restore(rest[1], yes)
	case "clean":
		return c.clean(yes)
	case "help":
		c.PrintHelp()
		return nil
	default:
		fmt.Fprintf(c.Out, "Unknown db command: %s\n\n", rest[0])
		c.PrintHelp()
		return ErrUsage
	}
}

// PrintHelp prints help for db subcommands
func (c *Runner) PrintHelp() {
	fmt.Fprintln(c.Out, `Usage: postboard db <command> [-y]

Commands:
  backup [file]     Write a backup of the badger database
  restore <file>    Replace the database with the contents of a backup
  clean             Delete every post and comment
  help              Display this help message`)
}

func (c *Runner) exists() bool {
	_, err := os.Stat(c.Path)
	return err == nil
}

func (c *Runner) confirm(question string) bool {
	fmt.Fprintf(c.Out, "%s [y/N] ", question)
	scanner := bufio.NewScanner(c.In)
	if !scanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(scanner.Text())
	return answer == "y" || answer == "Y"
}

func (c *Runner) open() (*repositories.BadgerStore, error) {
	if err := os.MkdirAll(c.Path, 0755); err != nil {
		return nil, errors.Wrap(err, "create database directory")
	}
	return repositories.NewBadgerStore(c.Path, c.Log)
}

// backup creates a backup of the database
func (c *Runner) backup(target string) error {
	if !c.exists() {
		fmt.Fprintln(c.Out, "No database exists to backup")
		return nil
	}

	if target == "" {
		if err := os.MkdirAll(c.BackupDir, 0755); err != nil {
			return errors.Wrap(err, "create backup directory")
		}
		target = filepath.Join(c.BackupDir, fmt.Sprintf("backup_%d.db", c.Now().Unix()))
	}

	store, err := c.open()
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Create(target)
	if err != nil {
		return errors.Wrap(err, "create backup file")
	}
	defer f.Close()

	if err := store.Backup(f); err != nil {
		return err
	}

	fmt.Fprintf(c.Out, "Database backed up successfully to %s\n", target)
	return nil
}

// restore replaces the database with a backup
func (c *Runner) restore(source string, yes bool) error {
	f, err := os.Open(source)
	if os.IsNotExist(err) {
		fmt.Fprintf(c.Out, "Backup file does not exist: %s\n", source)
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "open backup file")
	}
	defer f.Close()

	if err := repositories.Verify(f); err != nil {
		fmt.Fprintf(c.Out, "Backup file is not usable, database left untouched: %s\n", source)
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "rewind backup file")
	}

	if c.exists() && !yes && !c.confirm("Existing database found. Do you want to replace it?") {
		fmt.Fprintln(c.Out, "Operation cancelled")
		return nil
	}

	store, err := c.open()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Load(f); err != nil {
		fmt.Fprintln(c.Out, "Restore failed after the database was emptied")
		return err
	}

	fmt.Fprintln(c.Out, "Database restored successfully")
	return nil
}

// clean deletes all data but keeps the database directory
func (c *Runner) clean(yes bool) error {
	if !c.exists() {
		fmt.Fprintln(c.Out, "Database is already clean (does not exist)")
		return nil
	}

	if !yes && !c.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(c.Out, "Operation cancelled")
		return nil
	}

	store, err := c.open()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(c.Out, "Database cleaned successfully")
	return nil
}
