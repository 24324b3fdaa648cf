// Package cli implements the guided terminal menu. It is a thin
// presentation layer: all persistence goes through the store, all secret
// handling through the cipher, and all listing through the query package.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"passbook/internal/crypto"
	"passbook/internal/models"
	"passbook/internal/query"
	"passbook/internal/storage"
)

var (
	headerColor = color.New(color.FgMagenta, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

// App drives the interactive session after the administrator gate.
type App struct {
	store  *storage.Store
	cipher *crypto.Cipher
	log    *zap.Logger
}

// New constructs the menu application.
func New(store *storage.Store, cipher *crypto.Cipher, log *zap.Logger) *App {
	return &App{store: store, cipher: cipher, log: log}
}

// Run loops over the main menu until the user quits or input is closed.
func (a *App) Run() error {
	headerColor.Println("Password Manager")
	dimColor.Printf("database: %s\n\n", a.store.Path())

	for {
		var choice string
		prompt := &survey.Select{
			Message: "What would you like to do?",
			Options: []string{
				"List credentials",
				"Add credential",
				"Edit credential",
				"Delete credential",
				"Copy password to clipboard",
				"Quit",
			},
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			// Ctrl-C / closed input ends the session.
			return nil
		}

		var err error
		switch choice {
		case "List credentials":
			err = a.list()
		case "Add credential":
			err = a.add()
		case "Edit credential":
			err = a.edit()
		case "Delete credential":
			err = a.delete()
		case "Copy password to clipboard":
			err = a.copyPassword()
		case "Quit":
			okColor.Println("Bye")
			return nil
		}
		if err != nil {
			warnColor.Printf("Error: %v\n", err)
			a.log.Error("menu action failed", zap.String("action", choice), zap.Error(err))
		}
	}
}

// list asks for a sort key, direction, and optional filters, then renders
// the matching records with their passwords revealed.
func (a *App) list() error {
	records := a.store.Records()
	if len(records) == 0 {
		dimColor.Println("No credentials stored yet.")
		return nil
	}

	var sortChoice string
	if err := survey.AskOne(&survey.Select{
		Message: "Sort by",
		Options: []string{"Site", "Username", "Creation date"},
	}, &sortChoice); err != nil {
		return nil
	}
	var dirChoice string
	if err := survey.AskOne(&survey.Select{
		Message: "Direction",
		Options: []string{"Ascending", "Descending"},
	}, &dirChoice); err != nil {
		return nil
	}

	var siteFilter, userFilter string
	if err := survey.AskOne(&survey.Input{Message: "Filter by site (empty for all):"}, &siteFilter); err != nil {
		return nil
	}
	if err := survey.AskOne(&survey.Input{Message: "Filter by username (empty for all):"}, &userFilter); err != nil {
		return nil
	}

	filtered := query.Filter(records, query.Criteria{
		Site:     strings.TrimSpace(siteFilter),
		Username: strings.TrimSpace(userFilter),
	})
	sorted := query.Sort(filtered, sortKey(sortChoice), sortDirection(dirChoice))

	if len(sorted) == 0 {
		dimColor.Println("No records match the filter.")
		return nil
	}
	a.renderTable(sorted)
	return nil
}

func sortKey(choice string) query.SortKey {
	switch choice {
	case "Username":
		return query.ByUsername
	case "Creation date":
		return query.ByCreatedAt
	default:
		return query.BySite
	}
}

func sortDirection(choice string) query.Direction {
	if choice == "Descending" {
		return query.Descending
	}
	return query.Ascending
}

// renderTable prints records with revealed passwords. A record whose
// fingerprint check fails is shown with a warning placeholder instead of
// garbage plaintext.
func (a *App) renderTable(records []models.Record) {
	rows := make([][3]string, 0, len(records))
	widths := [3]int{len("Site"), len("Username"), len("Password")}
	for _, rec := range records {
		password, err := a.cipher.Reveal(rec.PasswordEncrypted, rec.PasswordHash)
		if err != nil {
			if errors.Is(err, crypto.ErrIntegrityMismatch) {
				password = "<wrong admin key>"
			} else {
				password = "<unreadable>"
			}
			a.log.Warn("could not reveal password",
				zap.String("site", rec.Site), zap.Error(err))
		}
		row := [3]string{rec.Site, rec.Username, password}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	format := fmt.Sprintf("%%-%ds  %%-%ds  %%-%ds\n", widths[0], widths[1], widths[2])
	headerColor.Printf(format, "Site", "Username", "Password")
	dimColor.Printf(format,
		strings.Repeat("-", widths[0]),
		strings.Repeat("-", widths[1]),
		strings.Repeat("-", widths[2]),
	)
	for _, row := range rows {
		fmt.Printf(format, row[0], row[1], row[2])
	}
}

// add prompts for a new credential and persists it.
func (a *App) add() error {
	var site, username, password string
	if err := survey.AskOne(&survey.Input{Message: "Site or application:"}, &site,
		survey.WithValidator(survey.Required)); err != nil {
		return nil
	}
	if err := survey.AskOne(&survey.Input{Message: "Username:"}, &username,
		survey.WithValidator(survey.Required)); err != nil {
		return nil
	}
	if err := survey.AskOne(&survey.Password{Message: "Password:"}, &password,
		survey.WithValidator(survey.Required)); err != nil {
		return nil
	}

	hash, encrypted := a.cipher.Seal(password)
	rec := models.NewRecord(strings.TrimSpace(site), strings.TrimSpace(username), hash, encrypted)
	if err := a.store.Add(rec); err != nil {
		return err
	}
	okColor.Println("Credential saved.")
	return nil
}

// edit updates an existing credential; empty answers keep current values.
func (a *App) edit() error {
	index, ok := a.chooseRecord("Which credential do you want to edit?")
	if !ok {
		return nil
	}
	current := a.store.Records()[index]

	var site, username, password string
	if err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf("New site (empty keeps %q):", current.Site),
	}, &site); err != nil {
		return nil
	}
	if err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf("New username (empty keeps %q):", current.Username),
	}, &username); err != nil {
		return nil
	}
	if err := survey.AskOne(&survey.Password{
		Message: "New password (empty keeps current):",
	}, &password); err != nil {
		return nil
	}

	err := a.store.Update(index, storage.UpdateFields{
		Site:     strings.TrimSpace(site),
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		return err
	}
	okColor.Println("Credential updated.")
	return nil
}

// delete removes a credential after confirmation.
func (a *App) delete() error {
	index, ok := a.chooseRecord("Which credential do you want to delete?")
	if !ok {
		return nil
	}

	confirmed := false
	rec := a.store.Records()[index]
	if err := survey.AskOne(&survey.Confirm{
		Message: fmt.Sprintf("Delete %s (%s)?", rec.Site, rec.Username),
	}, &confirmed); err != nil || !confirmed {
		return nil
	}

	if err := a.store.Delete(index); err != nil {
		return err
	}
	okColor.Println("Credential deleted.")
	return nil
}

// copyPassword reveals one password and puts it on the system clipboard.
func (a *App) copyPassword() error {
	index, ok := a.chooseRecord("Which password do you want to copy?")
	if !ok {
		return nil
	}
	rec := a.store.Records()[index]

	password, err := a.cipher.Reveal(rec.PasswordEncrypted, rec.PasswordHash)
	if err != nil {
		if errors.Is(err, crypto.ErrIntegrityMismatch) {
			return fmt.Errorf("the admin password does not match the one this record was written with")
		}
		return err
	}
	if err := clipboard.WriteAll(password); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	okColor.Printf("Password for %s copied to clipboard.\n", rec.Site)
	return nil
}

// chooseRecord lets the user pick a record by position. Returns false when
// there is nothing to pick or the prompt was cancelled.
func (a *App) chooseRecord(message string) (int, bool) {
	records := a.store.Records()
	if len(records) == 0 {
		dimColor.Println("No credentials stored yet.")
		return 0, false
	}

	labels := make([]string, len(records))
	for i, rec := range records {
		labels[i] = fmt.Sprintf("%d. %s (%s)", i+1, rec.Site, rec.Username)
	}

	index := 0
	if err := survey.AskOne(&survey.Select{Message: message, Options: labels}, &index); err != nil {
		return 0, false
	}
	return index, true
}
