package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"goodwill-valuation/config"
	"goodwill-valuation/internal/client"
	"goodwill-valuation/pkg/httpclient"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	inputFile string
)

var valuationsCmd = &cobra.Command{
	Use:   "valuations",
	Short: "Work with valuation records on a running server",
}

var listValuationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List every valuation, newest evaluation first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newValuationClient()
		if err != nil {
			return err
		}
		out, err := c.List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var getValuationCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one valuation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newValuationClient()
		if err != nil {
			return err
		}
		out, err := c.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var createValuationCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a valuation from a JSON body (--file, or stdin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readBody(cmd.InOrStdin())
		if err != nil {
			return err
		}
		c, err := newValuationClient()
		if err != nil {
			return err
		}
		out, err := c.Create(cmd.Context(), body)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var updateValuationCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Partially update a valuation from a JSON body (--file, or stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readBody(cmd.InOrStdin())
		if err != nil {
			return err
		}
		c, err := newValuationClient()
		if err != nil {
			return err
		}
		out, err := c.Update(cmd.Context(), args[0], body)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var deleteValuationCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a valuation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newValuationClient()
		if err != nil {
			return err
		}
		out, err := c.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	valuationsCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL (overrides client.base_url)")
	createValuationCmd.Flags().StringVarP(&inputFile, "file", "f", "", "JSON file with the request body")
	updateValuationCmd.Flags().StringVarP(&inputFile, "file", "f", "", "JSON file with the request body")

	valuationsCmd.AddCommand(listValuationsCmd)
	valuationsCmd.AddCommand(getValuationCmd)
	valuationsCmd.AddCommand(createValuationCmd)
	valuationsCmd.AddCommand(updateValuationCmd)
	valuationsCmd.AddCommand(deleteValuationCmd)
}

func newValuationClient() (*client.ValuationClient, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	baseURL := cfg.Client.BaseURL
	if serverURL != "" {
		baseURL = serverURL
	}
	return client.NewValuationClient(httpclient.New(baseURL, cfg.Client.Timeout, "")), nil
}

func readBody(stdin io.Reader) (json.RawMessage, error) {
	var (
		body []byte
		err  error
	)
	if inputFile != "" {
		body, err = os.ReadFile(inputFile)
	} else {
		body, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}
	return body, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
