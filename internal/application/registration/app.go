package registration

import (
	"github.com/ossm-org/orchid-accounts/internal/application/registration/cmd"
)

type App struct {
	CMD Command
}

type Command struct {
	Register *cmd.RegisterHandler
}

type Args struct {
	UserRepo   cmd.UserRepo
	UserGetter cmd.UserGetter
	Hasher     cmd.Hasher
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			Register: cmd.NewRegisterHandler(cmd.RegisterHandlerArgs{
				UserRepo:   args.UserRepo,
				UserGetter: args.UserGetter,
				Hasher:     args.Hasher,
			}),
		},
	}
}
