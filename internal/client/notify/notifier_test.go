package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminal_Notify(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminal(&buf, nil)

	n.Notify(Notification{Title: "Sucesso!", Description: "Sessão desconectada!"})
	n.Notify(Notification{Title: "Erro"})

	assert.Equal(t, "[!] Sucesso! Sessão desconectada!\n[!] Erro\n", buf.String())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(Notification{Title: "a"})
	r.Notify(Notification{Title: "b", Duration: DefaultDuration})

	all := r.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "b", all[1].Title)
	assert.Equal(t, 2, r.Len())
}
