package cli

import (
	"errors"

	"github.com/alexanderramin/promptguard/internal/assess"
	"github.com/spf13/cobra"
)

func newConversationCmd(app *App) *cobra.Command {
	var (
		user      string
		assistant string
		flags     verdictFlags
	)

	cmd := &cobra.Command{
		Use:   "conversation",
		Short: "Assess an assistant reply in the context of the user message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if assistant == "" {
				return errors.New("--assistant must not be empty")
			}
			assessor, err := app.assessor(SourceCLI)
			if err != nil {
				return err
			}

			report, err := assessor.AssessConversation(cmd.Context(), assess.ConversationRequest{
				User:      user,
				Assistant: assistant,
			}, flags.override())
			if err != nil {
				return err
			}
			return flags.emit(cmd, app, report)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User message that prompted the reply")
	cmd.Flags().StringVar(&assistant, "assistant", "", "Assistant reply to assess")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("assistant")
	flags.register(cmd)

	return cmd
}
