package cli

import (
	"context"
	"os"
)

// Chat sends one message to the assistant and prints the reply. The rolling
// history is kept by the service, so consecutive calls form a conversation.
func (a *App) Chat(ctx context.Context) error {
	message, err := getSimpleText(a.reader, "Your message", os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.chat.Send(ctx, message)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printlnFn(res.Reply)
	return nil
}
