package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-catalog/config"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	auth   catalog.Authenticator
	auther *catalog.RouteAuthenticator
	repo   catalog.RepositoryManager
	srv    router.Server[*fiber.App]
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) SetRepository(repo catalog.RepositoryManager) {
	a.repo = repo
}

func (a *App) SetDB(db *bun.DB) {
	a.bunDB = db
}

func (a *App) SetHTTPServer(srv router.Server[*fiber.App]) {
	a.srv = srv
}

func (a *App) SetAuthenticator(auth catalog.Authenticator) {
	a.auth = auth
}

func (a *App) SetHTTPAuth(auther *catalog.RouteAuthenticator) {
	a.auther = auther
}

func main() {

	cfg, err := gconfig.New(&config.BaseConfig{})
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	if cfg.Raw().GetApp().GetDebug() {
		fmt.Println("============")
		fmt.Println(print.MaybePrettyJSON(cfg.Raw()))
		fmt.Println("============")
	}

	app := &App{
		config: cfg,
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPAuth(ctx, app); err != nil {
		panic(err)
	}

	app.srv.Serve(app.Config().GetServer().GetAddress())

	WaitExitSignal()

}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.Config().GetPersistence().GetDSN())
	if err != nil {
		log.Fatal(err)
		return err
	}

	persistence.RegisterModel((*catalog.User)(nil))
	persistence.RegisterModel((*catalog.Product)(nil))

	cfg := app.Config().GetPersistence()
	dialect := sqlitedialect.New()
	client, err := persistence.New(cfg, db, dialect)
	if err != nil {
		log.Fatal(err)
		return err
	}

	migrationsFS, err := fs.Sub(catalog.GetMigrationsFS(), "data/sql/migrations/sqlite")
	if err != nil {
		return err
	}
	client.RegisterSQLMigrations(migrationsFS)

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	bundb, ok := client.DB().(*bun.DB)
	if !ok {
		return fmt.Errorf("unexpected database handle %T", client.DB())
	}

	app.SetDB(bundb)
	app.SetRepository(catalog.NewRepositoryManager(bundb))

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:           app.Config().GetApp().GetName(),
			UnescapePath:      true,
			EnablePrintRoutes: app.Config().GetApp().GetDebug(),
			StrictRouting:     false,
		}))
	})

	srv.Router().Get("/", func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, map[string]any{
			"msg": "Hello customer",
		})
	})

	app.SetHTTPServer(srv)

	return nil
}

type userStoreAdapter struct {
	users catalog.Users
}

func (a userStoreAdapter) GetByIdentifier(ctx context.Context, identifier string) (*catalog.User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func (a userStoreAdapter) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return a.users.ChangePassword(ctx, id, passwordHash)
}

func WithHTTPAuth(ctx context.Context, app *App) error {
	cfg := app.Config().GetAuth()

	repo := app.repo
	if err := repo.Validate(); err != nil {
		return err
	}

	userProvider := catalog.NewUserProvider(userStoreAdapter{users: repo.Users()})

	authenticator := catalog.NewAuthenticator(userProvider, cfg).
		WithCredentialStore(userProvider)

	app.SetAuthenticator(authenticator)

	httpAuth, err := catalog.NewHTTPAuthenticator(authenticator, cfg)
	if err != nil {
		return err
	}

	resolver := catalog.NewCurrentUserResolver(authenticator.TokenService(), userProvider).
		WithAuthScheme(cfg.GetAuthScheme())
	httpAuth.WithUserResolver(resolver)

	app.SetHTTPAuth(httpAuth)

	v1 := app.srv.Router().Group("/v1")

	catalog.RegisterAuthRoutes(v1,
		catalog.WithAuthControllerAuther(httpAuth),
		catalog.WithAuthControllerAuth(authenticator),
		catalog.WithAuthControllerRepo(repo),
		catalog.WithAuthControllerDebug(app.Config().GetApp().GetDebug()),
	)

	protected := httpAuth.ProtectedRoute(cfg, httpAuth.MakeAPIAuthErrorHandler(false))

	catalog.RegisterProductRoutes(v1, protected,
		catalog.WithProductsControllerRepo(repo),
	)

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
