package output

import (
	"fmt"
	"io"
	"time"

	"github.com/valyala/fastjson"
)

// WriteText emits one cookie identifier per line, nothing else.
func WriteText(w io.Writer, cookies []string) error {
	for _, c := range cookies {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON emits the result as a single JSON object:
// {"date":"YYYY-MM-DD","count":N,"cookies":[...]}.
// count is the shared occurrence count of the listed cookies, 0 when
// nothing matched the date.
func WriteJSON(w io.Writer, day time.Time, cookies []string, count int) error {
	var arena fastjson.Arena

	obj := arena.NewObject()
	obj.Set("date", arena.NewString(day.Format("2006-01-02")))
	obj.Set("count", arena.NewNumberInt(count))

	arr := arena.NewArray()
	for i, c := range cookies {
		arr.SetArrayItem(i, arena.NewString(c))
	}
	obj.Set("cookies", arr)

	buf := obj.MarshalTo(nil)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}
