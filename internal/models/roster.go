package models

// Roster is the static reference data the booking form draws from: the
// teacher list, the subject list and the grade-to-sections mapping. It is
// loaded once at startup and treated as immutable.
type Roster struct {
	Teachers []string            `json:"teachers"`
	Subjects []string            `json:"subjects"`
	Grades   map[string][]string `json:"grades"`
}

// HasTeacher reports whether the name belongs to the known roster.
func (r Roster) HasTeacher(name string) bool {
	for _, t := range r.Teachers {
		if t == name {
			return true
		}
	}
	return false
}

// DefaultRoster returns the built-in reference data used when no roster file
// is provided.
func DefaultRoster() Roster {
	return Roster{
		Teachers: []string{
			"Ahmed Al-Busaidi",
			"Fatma Al-Hinai",
			"Khalid Al-Rawahi",
			"Mariam Al-Lawati",
			"Said Al-Harthy",
			"Aisha Al-Zadjali",
			"Hamed Al-Abri",
			"Zainab Al-Balushi",
			"Nasser Al-Maamari",
			"Salma Al-Kindi",
		},
		Subjects: []string{
			"Arabic",
			"English",
			"Mathematics",
			"Science",
			"Islamic Education",
			"Social Studies",
			"Information Technology",
			"Art",
			"Physical Education",
		},
		Grades: map[string][]string{
			"5": {"5/1", "5/2", "5/3"},
			"6": {"6/1", "6/2", "6/3"},
			"7": {"7/1", "7/2", "7/3"},
			"8": {"8/1", "8/2", "8/3"},
			"9": {"9/1", "9/2", "9/3"},
		},
	}
}
