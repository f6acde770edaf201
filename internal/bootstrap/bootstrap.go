package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	grammaroutadapter "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/adapter/out"
	grammarservice "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/service"
	kgoutadapter "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/adapter/out"
	kgservice "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/service"
	kgusecase "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/usecase"
	notifyservice "github.com/pauljayakar30/Paninis-eye/internal/modules/notify/service"
	reconstructinadapter "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/adapter/in"
	reconstructoutadapter "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/adapter/out"
	reconstructout "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/port/out"
	reconstructservice "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/service"
	reconstructusecase "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/usecase"
	sessioninadapter "github.com/pauljayakar30/Paninis-eye/internal/modules/session/adapter/in"
	sessionoutadapter "github.com/pauljayakar30/Paninis-eye/internal/modules/session/adapter/out"
	sessionusecase "github.com/pauljayakar30/Paninis-eye/internal/modules/session/usecase"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/clock"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/config"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/id"
	"github.com/pauljayakar30/Paninis-eye/internal/server"
	uiapp "github.com/pauljayakar30/Paninis-eye/internal/ui/app"
)

type App struct {
	SessionCLI     sessioninadapter.CLIHandler
	ReconstructCLI reconstructinadapter.CLIHandler
	Server         *server.Server

	sessions *sessionusecase.Interactor
}

func New(cfg config.Config) (*App, error) {
	log := hclog.New(&hclog.LoggerOptions{Name: "paninis-eye", Level: hclog.Info})
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	ruleTable, err := grammaroutadapter.NewYAMLRuleSource(cfg.RulesPath).Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load grammar rules: %w", err)
	}
	validator := grammarservice.NewValidator(ruleTable, cfg.StrictGrammar)

	kgStore, err := kgoutadapter.NewSQLiteRuleStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new kg rule store: %w", err)
	}
	kgUC := kgusecase.NewInteractor(kgservice.NewKGService(kgStore))

	projector, err := sessionoutadapter.NewSQLiteProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session projector: %w", err)
	}
	sessionUC := sessionusecase.NewInteractor(
		sessionoutadapter.NewMemoryStore(cfg.SessionCapacity, cfg.SessionTTL),
		projector,
		sessionoutadapter.NewHTTPOCRClient(cfg.OCRServiceURL),
		sessionoutadapter.NewLocalPDFReader(),
		clk,
		ids,
		log.Named("session"),
	)

	var backend reconstructout.GenerationBackend
	switch cfg.Backend {
	case config.BackendPlugin:
		if cfg.PluginBinary == "" {
			return nil, fmt.Errorf("plugin backend selected but no binary configured")
		}
		backend = reconstructoutadapter.NewPluginBackend(cfg.PluginBinary)
	default:
		backend = reconstructoutadapter.NewOpenAIBackend(cfg.OpenAIModel)
	}

	hub := notifyservice.NewHub()
	orchestrator := reconstructservice.NewOrchestrator(backend, validator, cfg.MaxBackendCalls, log.Named("orchestrator"))
	reconstructUC := reconstructusecase.NewInteractor(sessionUC, kgUC, orchestrator, hub, clk, log.Named("reconstruct"))

	return &App{
		SessionCLI:     sessioninadapter.NewCLIHandler(sessionUC),
		ReconstructCLI: reconstructinadapter.NewCLIHandler(reconstructUC),
		Server:         server.New(cfg.ListenAddr, sessionUC, reconstructUC, hub, log.Named("http")),
		sessions:       sessionUC,
	}, nil
}

func RunTUI(app *App) error {
	program := tea.NewProgram(uiapp.NewModel(app.sessions), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
