package cmd

import (
	"taxsync/internal/adapters/git"
	"taxsync/internal/adapters/lock"
	"taxsync/internal/adapters/storage"
	"taxsync/internal/commitmsg"
	"taxsync/internal/config"
	"taxsync/internal/logging"
	"taxsync/internal/ports"
	"taxsync/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	BranchService  *services.BranchService
	ChangesService *services.ChangesService
	HistoryService *services.HistoryService
	PublishService *services.PublishService

	// Internal - for cleanup only
	historyRepo ports.PublishLogRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(engine config.Engine) (*Container, error) {
	// Create adapters
	historyRepo, err := storage.NewSQLiteRepository(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	codec := commitmsg.NewTrailerCodec()
	locker := lock.NewRepoLocker(engine.LockDir)
	opener := git.NewOpener()

	// Create services
	walker := services.NewTreeWalker(engine.WalkConcurrency)
	changesService := services.NewChangesService(opener, codec, walker, engine.DefaultBranch)
	branchService := services.NewBranchService(opener, codec, locker, engine.DefaultBranch)
	historyService := services.NewHistoryService(historyRepo)
	publishService := services.NewPublishService(
		opener,
		changesService,
		codec,
		locker,
		historyRepo,
		engine.DefaultBranch,
		engine.PublishTimeout,
	)

	logging.Logger.Debug("Container initialized",
		"default_branch", engine.DefaultBranch,
		"lock_dir", engine.LockDir)

	return &Container{
		BranchService:  branchService,
		ChangesService: changesService,
		HistoryService: historyService,
		PublishService: publishService,
		historyRepo:    historyRepo,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.historyRepo != nil {
		return c.historyRepo.Close()
	}
	return nil
}
