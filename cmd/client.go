package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/chinmay1088/esplora/api"
	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// authEnv holds a default Authorization header value
const authEnv = "ESPLORA_AUTHORIZATION"

// baseURL resolves the endpoint for this invocation
func baseURL() (string, error) {
	if urlFlag != "" {
		return urlFlag, nil
	}

	network := getCurrentNetwork()
	endpoint, ok := api.EndpointFor(network)
	if !ok {
		return "", fmt.Errorf("invalid network: %s. Use 'mainnet', 'testnet' or 'signet'", network)
	}
	return endpoint, nil
}

func authorization() (*string, error) {
	if authFlag {
		auth, err := unlockAuthorization()
		if err != nil {
			return nil, err
		}
		return &auth, nil
	}

	if v, ok := os.LookupEnv(authEnv); ok && v != "" {
		return &v, nil
	}
	return nil, nil
}

// newClient builds the client every command talks through
func newClient() (*api.Client, zerolog.Logger, error) {
	log := newLogger(verboseFlag)

	endpoint, err := baseURL()
	if err != nil {
		return nil, log, err
	}

	opts := &api.Options{Logger: &log}
	auth, err := authorization()
	if err != nil {
		return nil, log, err
	}
	if auth != nil {
		opts.Headers = &api.HeadersOptions{Authorization: auth}
	}

	client, err := api.NewClient(endpoint, opts)
	if err != nil {
		return nil, log, err
	}

	log.Debug().Str("url", client.BaseURL()).Msg("using esplora endpoint")
	return client, log, nil
}

// describeError adds a hint for the error kinds a user can act on
func describeError(err error) error {
	var statusErr *api.StatusError
	switch {
	case errors.As(err, &statusErr) && statusErr.StatusCode == 404:
		return fmt.Errorf("not found: %s", statusErr.Body)
	case errors.As(err, &statusErr) && statusErr.StatusCode == 401:
		return fmt.Errorf("%w (set %s or use --auth)", err, authEnv)
	case errors.Is(err, api.ErrDecode):
		return fmt.Errorf("%w (is --url an Esplora API endpoint?)", err)
	}
	return err
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04:05")
}

func formatStatus(status *api.TxStatus) string {
	if status == nil || !status.Confirmed {
		return color.YellowString("unconfirmed")
	}
	s := color.GreenString("confirmed")
	if status.BlockHeight != nil {
		s += fmt.Sprintf(" in block %d", *status.BlockHeight)
	}
	if status.BlockTime != nil {
		s += fmt.Sprintf(" (%s)", formatTime(*status.BlockTime))
	}
	return s
}

// isHeight reports whether arg is a block height rather than a hash
func isHeight(arg string) (int64, bool) {
	if len(arg) == 64 {
		return 0, false
	}
	n, err := strconv.ParseInt(arg, 10, 64)
	return n, err == nil && n >= 0
}

func shortID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "…" + id[len(id)-8:]
}
