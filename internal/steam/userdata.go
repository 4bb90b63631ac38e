package steam

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"emustation/internal/fileutil"
	"emustation/internal/logging"
	"emustation/internal/services"
	"emustation/internal/vdf"
)

// ledgerName is the cloud-storage namespace that holds user collections.
const ledgerName = "cloud-storage-namespace-1.json"

// DefaultUserdataCandidates lists the userdata directories probed when no
// override is configured, Windows installs first.
func DefaultUserdataCandidates() []string {
	candidates := []string{
		`C:\Program Files (x86)\Steam\userdata`,
		`C:\Program Files\Steam\userdata`,
		`D:\Steam\userdata`,
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates,
			filepath.Join(home, ".steam", "steam", "userdata"),
			filepath.Join(home, ".local", "share", "Steam", "userdata"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam", "userdata"),
		)
	}
	return candidates
}

// FindUserdata returns override when set, otherwise the first existing
// default candidate.
func FindUserdata(override string) (string, error) {
	if override = strings.TrimSpace(override); override != "" {
		if !fileutil.IsDir(override) {
			return "", services.Wrap(services.ErrNotFound, "steam", "locate userdata",
				fmt.Sprintf("configured userdata directory %s does not exist", override), nil)
		}
		return override, nil
	}
	for _, candidate := range DefaultUserdataCandidates() {
		if fileutil.IsDir(candidate) {
			return candidate, nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, "steam", "locate userdata",
		"could not find Steam userdata folder; set paths.steam_userdata_dir", nil)
}

// User is one Steam account directory.
type User struct {
	ID      string
	Persona string
}

// Label renders "Persona (id)".
func (u User) Label() string {
	if u.Persona == "" || u.Persona == u.ID {
		return u.ID
	}
	return fmt.Sprintf("%s (%s)", u.Persona, u.ID)
}

// ListUsers returns every numeric account directory under userdata. The
// persona name falls back to the id when localconfig.vdf is missing or
// unreadable.
func ListUsers(userdata string, logger *slog.Logger) ([]User, error) {
	logger = logging.NewComponentLogger(logger, "steam")
	entries, err := os.ReadDir(userdata)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "steam", "list users", userdata, err)
		}
		return nil, fmt.Errorf("list steam users: %w", err)
	}
	var users []User
	for _, entry := range entries {
		if !entry.IsDir() || !isDigits(entry.Name()) {
			continue
		}
		user := User{ID: entry.Name(), Persona: entry.Name()}
		persona, err := readPersona(filepath.Join(userdata, entry.Name(), "config", "localconfig.vdf"))
		switch {
		case err != nil:
			logger.Debug("persona name unavailable", logging.String(logging.FieldAccount, user.ID), logging.Error(err))
		case persona != "":
			user.Persona = persona
		}
		users = append(users, user)
	}
	return users, nil
}

func readPersona(path string) (string, error) {
	data, ok, err := fileutil.ReadOptional(path)
	if err != nil || !ok {
		return "", err
	}
	root, err := vdf.DecodeText(string(data))
	if err != nil {
		return "", err
	}
	store, ok := root.GetMap("UserLocalConfigStore")
	if !ok {
		return "", nil
	}
	friends, ok := store.GetMap("friends")
	if !ok {
		return "", nil
	}
	name, _ := friends.GetString("PersonaName")
	return strings.TrimSpace(name), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Account resolves the files for one Steam account.
type Account struct {
	ID        string
	ConfigDir string
}

// OpenAccount returns the account rooted at userdata/id. The account's
// config directory must already exist; Steam creates it on first login.
func OpenAccount(userdata, id string) (Account, error) {
	id = strings.TrimSpace(id)
	if !isDigits(id) {
		return Account{}, services.Wrap(services.ErrValidation, "steam", "open account",
			fmt.Sprintf("account id %q is not numeric", id), nil)
	}
	configDir := filepath.Join(userdata, id, "config")
	if !fileutil.IsDir(configDir) {
		return Account{}, services.Wrap(services.ErrNotFound, "steam", "open account",
			fmt.Sprintf("could not find shortcuts.vdf for Steam account %s", id), nil)
	}
	return Account{ID: id, ConfigDir: configDir}, nil
}

// ShortcutsPath is the account's shortcuts.vdf.
func (a Account) ShortcutsPath() string { return filepath.Join(a.ConfigDir, "shortcuts.vdf") }

// GridDir holds custom artwork.
func (a Account) GridDir() string { return filepath.Join(a.ConfigDir, "grid") }

// LedgerPath is the collection ledger.
func (a Account) LedgerPath() string {
	return filepath.Join(a.ConfigDir, "cloudstorage", ledgerName)
}
