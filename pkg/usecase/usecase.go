package usecase

import (
	"time"

	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/config"
	"github.com/secmon-lab/safetydocs/pkg/report"
	"github.com/secmon-lab/safetydocs/pkg/service/archive"
	"github.com/secmon-lab/safetydocs/pkg/service/notify"
	"github.com/secmon-lab/safetydocs/pkg/utils/metrics"
)

type UseCases struct {
	repo     interfaces.Repository
	settings *config.Settings
	notifier notify.Service
	archive  archive.Service
	metrics  *metrics.Metrics
	renderer *report.Renderer
	clock    func() time.Time

	User        *UserUseCase
	Project     *ProjectUseCase
	Area        *AreaUseCase
	Template    *TemplateUseCase
	Hazard      *HazardUseCase
	Participant *ParticipantUseCase
	Briefing    *BriefingUseCase
	Report      *ReportUseCase
	Audit       *AuditUseCase
	Auth        Authenticator
}

type Option func(*UseCases)

func WithSettings(settings *config.Settings) Option {
	return func(uc *UseCases) {
		uc.settings = settings
	}
}

// WithNotifier enables Slack alerts for high risk hazards
func WithNotifier(svc notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = svc
	}
}

// WithArchive stores a copy of every rendered report
func WithArchive(svc archive.Service) Option {
	return func(uc *UseCases) {
		uc.archive = svc
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *UseCases) {
		uc.metrics = m
	}
}

func WithRenderer(r *report.Renderer) Option {
	return func(uc *UseCases) {
		uc.renderer = r
	}
}

func WithAuth(auth Authenticator) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

// WithClock replaces time.Now
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:  repo,
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.settings == nil {
		uc.settings = config.Default()
	}
	if uc.settings.RiskScaleMax <= 0 {
		uc.settings.RiskScaleMax = config.DefaultRiskScaleMax
	}
	if uc.renderer == nil {
		uc.renderer = report.NewRenderer()
	}
	if uc.Auth == nil {
		uc.Auth = &denyAuthenticator{}
	}

	b := &base{repo: repo, now: func() time.Time { return uc.clock().UTC() }}

	uc.User = &UserUseCase{base: b}
	uc.Project = &ProjectUseCase{base: b}
	uc.Area = &AreaUseCase{base: b}
	uc.Template = &TemplateUseCase{base: b, riskScaleMax: uc.settings.RiskScaleMax}
	uc.Hazard = &HazardUseCase{
		base:         b,
		riskScaleMax: uc.settings.RiskScaleMax,
		notifier:     uc.notifier,
		metrics:      uc.metrics,
	}
	uc.Participant = &ParticipantUseCase{base: b}
	uc.Briefing = &BriefingUseCase{base: b, defaults: uc.settings.Briefing}
	uc.Report = &ReportUseCase{
		base:     b,
		renderer: uc.renderer,
		archive:  uc.archive,
		metrics:  uc.metrics,
	}
	uc.Audit = &AuditUseCase{base: b}

	return uc
}

// Settings returns the effective application settings
func (uc *UseCases) Settings() *config.Settings {
	return uc.settings
}
