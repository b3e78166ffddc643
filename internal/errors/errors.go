package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/aidant/internal/keyring"
	"github.com/julianstephens/aidant/internal/lockfile"
	"github.com/julianstephens/aidant/internal/logger"
	"github.com/julianstephens/aidant/internal/storage"
	"github.com/julianstephens/aidant/internal/store"
	"github.com/julianstephens/aidant/internal/validation"
)

const prefix = "Erreur : "

// hints are printed under the error when it wraps one of these.
var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotLoaded, "Lancez 'aidant init' pour créer le carnet."},
	{store.ErrNotLoggedIn, "Ouvrez une session avec 'aidant login'."},
	{store.ErrDamaged, "Lancez 'aidant doctor' pour voir les enregistrements concernés."},
	{lockfile.ErrLocked, "Fermez l'autre session aidant (interface ou commande) puis réessayez."},
	{keyring.ErrKeyringUnavailable, "Définissez AIDANT_DB_CONNECTION ou utilisez un fichier .pgpass."},
}

// Hint returns the suggestion shown for err, if any.
func Hint(err error) (string, bool) {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint, true
		}
	}
	return "", false
}

// Format renders err for the terminal: the "Erreur : " prefix, one line per
// invalid form field, then a hint when one is known.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	var fields validation.FieldErrors
	if errors.As(err, &fields) && len(fields) > 1 {
		fmt.Fprintf(&b, "%s%d champs invalides", prefix, len(fields))
		for _, f := range fields {
			fmt.Fprintf(&b, "\n  - %s : %s", f.Field, f.Message)
		}
	} else {
		fmt.Fprintf(&b, prefix+"%v", err)
	}

	if hint, ok := Hint(err); ok {
		b.WriteString("\n" + hint)
	}
	return b.String()
}

// Formatf formats a message with the "Erreur : " prefix.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf(prefix+format, args...)
}

// Fatal logs err, prints it with Format and exits with code 1. A nil error is ignored.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
