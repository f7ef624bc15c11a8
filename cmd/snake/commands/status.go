package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gridsnake/engine/api"
	"github.com/gridsnake/engine/rules"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	addAPIAddrFlag(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "shows the session and latest frame of a game served with play --listen",
	RunE: func(*cobra.Command, []string) error {
		client := &http.Client{
			Timeout: 5 * time.Second,
		}

		session := &api.Session{}
		if err := getJSON(client, apiAddr+"/session", session); err != nil {
			return err
		}
		frame := &rules.Frame{}
		if err := getJSON(client, apiAddr+"/frames/last", frame); err != nil {
			return err
		}

		spew.Dump(session, frame)
		return nil
	},
}

func getJSON(client *http.Client, url string, v interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return errors.Wrapf(err, "error while getting %s", url)
	}
	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		body := map[string]string{}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return fmt.Errorf("%s returned %d: %s", url, resp.StatusCode, body["error"])
	}
	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(v), "unable to decode %s", url)
}
