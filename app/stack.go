package app

import (
	"context"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/store/iavl"
	"github.com/iov-one/xswap/x"
	"github.com/iov-one/xswap/x/cash"
	"github.com/iov-one/xswap/x/codeid"
	"github.com/iov-one/xswap/x/escrowdst"
	"github.com/iov-one/xswap/x/escrowfactory"
	"github.com/iov-one/xswap/x/sigs"
	"github.com/iov-one/xswap/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported by abci Info.
const Name = "xswap"

// Authenticator returns the authentication used by every extension.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// Chain returns a chain of decorators, to handle authentication,
// panics, logging and atomic delivery before calling the router.
func Chain() Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Routes returns a default router, registering the handlers of all
// extensions.
func Routes(authFn x.Authenticator) *Router {
	r := NewRouter()
	bank := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, authFn, bank)
	sigs.RegisterRoutes(r, authFn)
	codeid.RegisterRoutes(r, authFn)
	escrowfactory.RegisterRoutes(r, authFn, codeid.NewLookup(), bank)
	escrowdst.RegisterRoutes(r, authFn, bank)
	return r
}

// QueryRouter returns a default query router, allowing access to the
// raw store and to all extension buckets.
func QueryRouter() xswap.QueryRouter {
	r := xswap.NewQueryRouter()
	r.RegisterAll(
		RegisterStoreQuery,
		cash.RegisterQuery,
		sigs.RegisterQuery,
		codeid.RegisterQuery,
		escrowdst.RegisterQuery,
		escrowfactory.RegisterQuery,
	)
	return r
}

// Initializers loads genesis state of all extensions.
func Initializers() xswap.Initializer {
	return xswap.ChainInitializers{
		cash.Initializer{},
		codeid.Initializer{},
		escrowfactory.Initializer{},
	}
}

// Stack wires the decorator chain around the router.
func Stack() xswap.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Routes(authFn))
}

// GenerateApp creates the abci application backed by an iavl store in
// dbPath. An empty dbPath keeps all state in memory.
func GenerateApp(dbPath string, logger log.Logger, debug bool) (abci.Application, error) {
	db, err := iavl.NewCommitStore(dbPath, Name)
	if err != nil {
		return nil, err
	}
	return NewApplication(db, logger, debug), nil
}

// NewApplication builds the application over an already opened store.
func NewApplication(db xswap.CommitKVStore, logger log.Logger, debug bool) *App {
	return New(context.Background(), db, Config{
		Name:    Name,
		Decoder: TxDecoder,
		Handler: Stack(),
		Init:    Initializers(),
		Queries: QueryRouter(),
		Logger:  logger,
		Debug:   debug,
	})
}
