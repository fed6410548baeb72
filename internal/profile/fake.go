package profile

// FakeStore is a test double holding the profile in memory.
type FakeStore struct {
	// Profile is returned by Load and overwritten by Save.
	Profile Profile

	// Saves records every profile passed to Save.
	Saves []Profile

	// LoadError, if set, will be returned by Load.
	LoadError error

	// SaveError, if set, will be returned by Save.
	SaveError error
}

// Load returns the stored profile.
func (f *FakeStore) Load() (Profile, error) {
	if f.LoadError != nil {
		return LeadFree, f.LoadError
	}
	return f.Profile, nil
}

// Save records the profile.
func (f *FakeStore) Save(p Profile) error {
	if f.SaveError != nil {
		return f.SaveError
	}
	f.Profile = p
	f.Saves = append(f.Saves, p)
	return nil
}
