package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/dysh/internal/client/services"
	"github.com/dmitrijs2005/dysh/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	authService    services.AuthService
	recipeService  services.RecipeService
	profileService services.ProfileService
	metrics        prometheus.Gatherer
	log            logging.Logger
	reader         *bufio.Reader
	out            io.Writer
}

func NewApp(
	auth services.AuthService,
	recipes services.RecipeService,
	profile services.ProfileService,
	metrics prometheus.Gatherer,
	log logging.Logger,
) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		authService:    auth,
		recipeService:  recipes,
		profileService: profile,
		metrics:        metrics,
		log:            log,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to dysh CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	st, _ := a.authService.Status(ctx)
	return st.SignedIn
}

func (a *App) getStatus(ctx context.Context) string {
	st, _ := a.authService.Status(ctx)
	if !st.SignedIn {
		return "(signed out)"
	}
	name := st.User.Email
	if name == "" {
		name = st.User.ID
	}
	return fmt.Sprintf("(%s)", name)
}
