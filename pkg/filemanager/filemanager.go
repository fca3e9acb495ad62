// Package filemanager is the modal card-maintenance submenu. It owns
// no persistent state: it borrows the card and console, and it is
// logging-loop-exclusive while active.
package filemanager

import (
	"bufio"
	"strings"

	"github.com/MMartini1/endline-tension-meter/pkg/console"
	"github.com/MMartini1/endline-tension-meter/pkg/storage"
)

// Manager runs the file menu. Names in protected are never deleted by
// the bulk clear; comparison is exact, matching the card backend's
// naming convention.
type Manager struct {
	card      storage.Card
	con       *console.Console
	protected []string
}

func New(card storage.Card, con *console.Console, protected ...string) *Manager {
	return &Manager{card: card, con: con, protected: protected}
}

// Run enters the modal loop; it returns when the operator exits with
// x. Logging is suspended for the duration.
func (m *Manager) Run() {
	m.con.Println()
	m.con.Println("--- FILE MANAGER ---")
	m.con.Println()
	for {
		m.con.Println()
		m.con.Println("Choose: l - list files; t - transfer a file; d - delete a file; c - clear the entire SD card; x - exit file manager.")
		m.con.Println("Enter file option:")
		m.con.WaitForInput()
		choice := m.con.ReadField()
		if choice == "" {
			m.con.Println("Invalid option entered!")
			continue
		}
		switch choice[0] {
		case 'l', 'L':
			m.list()
		case 't', 'T':
			m.transfer()
		case 'd', 'D':
			m.delete()
		case 'c', 'C':
			m.clearCard()
		case 'x', 'X':
			return
		default:
			m.con.Println("Invalid option entered!")
		}
	}
}

// list prints the card's tree, indenting one tab per directory level
// and showing sizes for files.
func (m *Manager) list() {
	entries, err := m.card.List()
	if err != nil {
		m.con.Println("Error listing card.")
		return
	}
	m.printEntries(entries, 0)
}

func (m *Manager) printEntries(entries []storage.Entry, depth int) {
	for _, e := range entries {
		m.con.Print(strings.Repeat("\t", depth))
		if e.Dir {
			m.con.Println(e.Name + "/")
			m.printEntries(e.Children, depth+1)
		} else {
			m.con.Printf("%s\t\t%d\n", e.Name, e.Size)
		}
	}
	m.con.Println("**nomorefiles**")
}

func (m *Manager) promptName() string {
	m.con.Println("Enter FN:")
	m.con.WaitForInput()
	name := m.con.ReadField()
	m.con.Println("FILE: " + name)
	return name
}

// transfer dumps a file to the console byte by byte, framed so the
// operator can cut it out of a terminal capture.
func (m *Manager) transfer() {
	name := m.promptName()
	m.con.Println()
	if !m.card.Exists(name) {
		m.con.Println("File does not exist.")
		return
	}
	f, err := m.card.Open(name)
	if err != nil {
		m.con.Println("Error opening file.")
		return
	}
	defer f.Close()

	m.con.Println("File dump from " + name)
	m.con.Println()
	m.con.Println("--------------------------")
	m.con.Println()
	r := bufio.NewReader(f)
	for {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		m.con.Write([]byte{b})
	}
	m.con.Println()
	m.con.Println("--------------------------")
	m.con.Println()
	m.con.Println("Done!")
}

func (m *Manager) delete() {
	name := m.promptName()
	if !m.card.Exists(name) {
		m.con.Println("File entered does not exist.")
		return
	}
	if err := m.card.Remove(name); err != nil {
		m.con.Println("File could not be removed.")
	} else {
		m.con.Println("File removed.")
	}
	m.con.Println()
}

// clearCard deletes every top-level entry except the protected names.
func (m *Manager) clearCard() {
	m.con.Println()
	m.con.Println("WARNING: All data on card will be cleared - type Y to continue, or any other key to abort.")
	m.con.WaitForInput()
	field := m.con.ReadField()
	if len(field) == 0 || (field[0] != 'Y' && field[0] != 'y') {
		return
	}
	entries, err := m.card.List()
	if err != nil {
		m.con.Println("Error listing card.")
		return
	}
	for _, e := range entries {
		if m.isProtected(e.Name) {
			continue
		}
		m.con.Print(e.Name)
		if err := m.card.Remove(e.Name); err != nil {
			m.con.Println(" could not be removed.")
		} else {
			m.con.Println(" removed.")
		}
	}
}

func (m *Manager) isProtected(name string) bool {
	for _, p := range m.protected {
		if name == p {
			return true
		}
	}
	return false
}
