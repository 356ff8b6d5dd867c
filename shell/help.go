package shell

import (
	"embed"
	"errors"
)

//go:embed helptext
var helptext embed.FS

func usage(args []string) (*Response, error) {
	topic := "usage"
	if len(args) > 0 {
		topic = args[0]
	}
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return nil, errors.New("there is no help text for the topic " + topic)
	}
	return Msg(string(dat)), nil
}
