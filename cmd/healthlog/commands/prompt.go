package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"healthlog/internal/domain"
)

// promptConfirmer asks on the command's stdin unless yes is set.
func promptConfirmer(cmd *cobra.Command, yes bool) domain.Confirmer {
	if yes {
		return domain.AlwaysConfirm
	}
	return domain.ConfirmFunc(func(msg string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", msg)
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
