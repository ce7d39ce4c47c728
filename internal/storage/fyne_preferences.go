package storage

import "fyne.io/fyne/v2"

// PreferencesStore keeps values in the fyne application's preference store.
// Fyne cannot tell an unset key from an empty one, so empty values read as absent.
type PreferencesStore struct {
	prefs fyne.Preferences
}

var _ Store = (*PreferencesStore)(nil)

// NewPreferencesStore wraps prefs, usually fyne.App.Preferences().
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

func (store *PreferencesStore) Load(key string) (string, bool, error) {
	value := store.prefs.String(key)
	return value, value != "", nil
}

func (store *PreferencesStore) Save(key, value string) error {
	store.prefs.SetString(key, value)
	return nil
}

func (store *PreferencesStore) Close() error {
	return nil
}
