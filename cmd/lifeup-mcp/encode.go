package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeupmcp/internal/encode"
	"lifeupmcp/internal/types"
	"lifeupmcp/internal/validate"
)

// encodeCmd validates and encodes a request without sending it
var encodeCmd = &cobra.Command{
	Use:   "encode <operation> <json-args>",
	Short: "Validate and encode a request offline",
	Long: `Runs the validation engine and the request encoder on a JSON argument
object and prints the resulting lifeup:// command. Nothing is sent.

Operations: ` + operationList() + `

Example:
  lifeup-mcp encode achievement.update '{"edit_id":109,"secret":true}'`,
	Args: cobra.ExactArgs(2),
	RunE: runEncode,
}

func runEncode(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	op := types.Operation(args[0])

	var raw map[string]any
	if err := json.Unmarshal([]byte(args[1]), &raw); err != nil {
		return fmt.Errorf("arguments must be a JSON object: %w", err)
	}

	req, err := validate.Request(op, raw)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "✗ %d violation(s) for %s\n", len(verr.Violations), op)
			for _, v := range verr.Violations {
				fmt.Fprintf(out, "  - %s: %s\n", v.Field, v.Message)
			}
		}
		return err
	}

	command, err := encode.Request(req)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, command.String())
	return nil
}

func operationList() string {
	names := make([]string, len(types.Operations))
	for i, op := range types.Operations {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}
