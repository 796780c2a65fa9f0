package profile

import "log"

// DefaultProfileName is assigned to units without an explicit profile
const DefaultProfileName = "Infantry"

// Manager maps unit identity to an active movement profile.
// Single-threaded like the rest of the simulation core
type Manager struct {
	profiles    map[string]*Profile
	order       []string // Registration order, for the last-resort fallback
	assignments map[string]string
}

// NewManager creates an empty registry
func NewManager() *Manager {
	return &Manager{
		profiles:    make(map[string]*Profile),
		assignments: make(map[string]string),
	}
}

// NewManagerWithPresets creates a registry pre-loaded with the built-in
// presets
func NewManagerWithPresets() *Manager {
	m := NewManager()
	for _, p := range Presets {
		m.Register(p)
	}
	return m
}

// Register adds or replaces a profile under its name
func (m *Manager) Register(p *Profile) {
	if _, exists := m.profiles[p.Name]; !exists {
		m.order = append(m.order, p.Name)
	}
	m.profiles[p.Name] = p
}

// Lookup returns the named profile, nil when unknown
func (m *Manager) Lookup(name string) *Profile {
	return m.profiles[name]
}

// Assign binds a unit to a registered profile by name.
// Unknown names fail non-fatally: logged, false returned, the unit keeps
// its previous assignment
func (m *Manager) Assign(unitID, profileName string) bool {
	if _, ok := m.profiles[profileName]; !ok {
		log.Printf("profile: cannot assign unknown profile %q to unit %s", profileName, unitID)
		return false
	}
	m.assignments[unitID] = profileName
	return true
}

// ProfileFor resolves the active profile for a unit: its assignment,
// then the Infantry default, then the first-registered profile.
// May still return nil when the registry is empty; callers must handle it
func (m *Manager) ProfileFor(unitID string) *Profile {
	if name, ok := m.assignments[unitID]; ok {
		if p := m.profiles[name]; p != nil {
			return p
		}
	}
	if p := m.profiles[DefaultProfileName]; p != nil {
		return p
	}
	if len(m.order) > 0 {
		return m.profiles[m.order[0]]
	}
	return nil
}
