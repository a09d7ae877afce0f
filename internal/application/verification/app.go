package verification

import (
	"github.com/ossm-org/orchid-accounts/internal/application/verification/cmd"
	"github.com/ossm-org/orchid-accounts/internal/application/verification/query"
)

type App struct {
	CMD   Command
	Query Query
}

type Command struct {
	RequestCode *cmd.RequestCodeHandler
}

type Query struct {
	GetVerificationCode *query.GetVerificationCodeHandler
}

type Args struct {
	Repo       cmd.Repo
	MailSender cmd.MailSender
	CodeGetter query.CodeGetter
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			RequestCode: cmd.NewRequestCodeHandler(cmd.RequestCodeHandlerArgs{
				Repo:       args.Repo,
				MailSender: args.MailSender,
			}),
		},
		Query: Query{
			GetVerificationCode: query.NewGetVerificationCodeHandler(args.CodeGetter),
		},
	}
}
