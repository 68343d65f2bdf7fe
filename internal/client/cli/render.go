package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/client/client"
	"github.com/dmitrijs2005/gzapadmin/internal/client/notify"
	"github.com/dmitrijs2005/gzapadmin/internal/client/services"
)

const dateLayout = "02/01/2006 15:04"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// fail turns err into a notification. Validation errors list every field.
func (a *App) fail(title string, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		keys := make([]string, 0, len(verr.Fields))
		for k := range verr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a.notifier.Notify(notify.Notification{Title: title, Description: fmt.Sprintf("%s: %s", k, verr.Fields[k])})
		}
		return err
	}
	a.notifier.Notify(notify.Notification{Title: title, Description: client.Message(err, "Erro desconhecido")})
	return err
}

func (a *App) success(description string) {
	a.notifier.Notify(notify.Notification{Title: "Sucesso!", Description: description})
}
