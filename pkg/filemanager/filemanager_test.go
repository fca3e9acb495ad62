package filemanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MMartini1/endline-tension-meter/pkg/console"
	"github.com/MMartini1/endline-tension-meter/pkg/storage"
)

func newCard(t *testing.T, files map[string]string) *storage.MemCard {
	t.Helper()
	card := storage.NewMemCard()
	for name, body := range files {
		f, err := card.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	return card
}

func TestRun_List(t *testing.T) {
	card := newCard(t, map[string]string{
		"26083100.CSV": "millis,time,raw_load,load\n",
		"CONFIG.TXT":   "echo = 1\n",
	})
	mt := console.NewMockTransport("l\n", "x\n")
	m := New(card, console.New(mt))

	m.Run()

	out := mt.Out.String()
	assert.Contains(t, out, "--- FILE MANAGER ---")
	assert.Contains(t, out, "26083100.CSV\t\t26")
	assert.Contains(t, out, "CONFIG.TXT\t\t9")
	assert.Contains(t, out, "**nomorefiles**")
}

func TestRun_Transfer(t *testing.T) {
	card := newCard(t, map[string]string{"26083100.CSV": "1,2,3\n"})
	mt := console.NewMockTransport("t\n", "26083100.CSV\n", "x\n")
	m := New(card, console.New(mt))

	m.Run()

	out := mt.Out.String()
	assert.Contains(t, out, "FILE: 26083100.CSV")
	assert.Contains(t, out, "File dump from 26083100.CSV")
	assert.Contains(t, out, "1,2,3\n")
	assert.Contains(t, out, "Done!")
}

func TestRun_TransferMissing(t *testing.T) {
	card := newCard(t, nil)
	mt := console.NewMockTransport("t\n", "NOPE.CSV\n", "x\n")
	m := New(card, console.New(mt))

	m.Run()
	assert.Contains(t, mt.Out.String(), "File does not exist.")
}

func TestRun_Delete(t *testing.T) {
	card := newCard(t, map[string]string{"OLD.CSV": "x"})
	mt := console.NewMockTransport("d\n", "OLD.CSV\n", "x\n")
	m := New(card, console.New(mt))

	m.Run()

	assert.Contains(t, mt.Out.String(), "File removed.")
	assert.False(t, card.Exists("OLD.CSV"))
}

func TestRun_DeleteMissing(t *testing.T) {
	card := newCard(t, nil)
	mt := console.NewMockTransport("d\n", "NOPE.CSV\n", "x\n")
	m := New(card, console.New(mt))

	m.Run()
	assert.Contains(t, mt.Out.String(), "File entered does not exist.")
}

func TestRun_ClearSparesProtected(t *testing.T) {
	card := newCard(t, map[string]string{
		"26083100.CSV": "live log",
		"26083001.CSV": "old log",
		"CONFIG.TXT":   "echo = 1\n",
	})
	mt := console.NewMockTransport("c\n", "Y\n", "x\n")
	m := New(card, console.New(mt), "26083100.CSV", "CONFIG.TXT")

	m.Run()

	assert.True(t, card.Exists("26083100.CSV"))
	assert.True(t, card.Exists("CONFIG.TXT"))
	assert.False(t, card.Exists("26083001.CSV"))
	assert.Contains(t, mt.Out.String(), "26083001.CSV removed.")
}

func TestRun_ClearAborted(t *testing.T) {
	card := newCard(t, map[string]string{"26083001.CSV": "old log"})
	mt := console.NewMockTransport("c\n", "n\n", "x\n")
	m := New(card, console.New(mt))

	m.Run()
	assert.True(t, card.Exists("26083001.CSV"))
}

func TestRun_InvalidOption(t *testing.T) {
	card := newCard(t, nil)
	mt := console.NewMockTransport("q\n", "x\n")
	m := New(card, console.New(mt))

	m.Run()
	assert.Contains(t, mt.Out.String(), "Invalid option entered!")
}
