package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"learnpath_backend/pkg/client"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:           "learnctl",
	Short:         "Terminal client for the learnpath API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	server := os.Getenv("LEARNCTL_SERVER")
	if server == "" {
		server = "http://localhost:5000"
	}

	rootCmd.PersistentFlags().String("server", server, "API base URL (overrides LEARNCTL_SERVER)")
	rootCmd.PersistentFlags().String("token-file", "", "Where the session token is kept (default: user config dir)")
	rootCmd.PersistentFlags().StringP("output", "o", "json", "Output format: json or yaml")

	rootCmd.AddCommand(signupCmd, signinCmd, signoutCmd, meCmd)
	rootCmd.AddCommand(roadmapCmd, contentCmd, quizCmd)
}

// session builds the client from the persistent flags.
func session(cmd *cobra.Command) (*client.Session, error) {
	server, _ := cmd.Flags().GetString("server")
	path, _ := cmd.Flags().GetString("token-file")
	if path == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return client.NewSession(server, &client.FileTokenStore{Path: path}), nil
}

// render writes v in the format chosen with --output. YAML keys follow the
// JSON field names.
func render(cmd *cobra.Command, v interface{}) error {
	format, _ := cmd.Flags().GetString("output")
	return write(cmd.OutOrStdout(), format, v)
}

func write(w io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case "json":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		var generic interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
