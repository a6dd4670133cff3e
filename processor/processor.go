package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/NextMind-AI/chat-sentiment/livechat"
	"github.com/NextMind-AI/chat-sentiment/report"
	"github.com/NextMind-AI/chat-sentiment/sentiment"

	"github.com/rs/zerolog/log"
)

// Processor runs the fetch, extract, score and assemble pipeline. A run
// is strictly sequential and either returns a complete report or an error.
type Processor struct {
	archives livechat.ArchiveLister
	scorer   sentiment.Scorer
	detector CustomerDetector
	settings Settings
	now      func() time.Time
}

func NewProcessor(archives livechat.ArchiveLister, scorer sentiment.Scorer, detector CustomerDetector, settings Settings) *Processor {
	if detector == nil {
		detector = UUIDAuthorDetector{}
	}
	if settings.PageSize <= 0 {
		settings.PageSize = livechat.DefaultPageSize
	}
	if settings.Observer == nil {
		settings.Observer = noopObserver{}
	}
	return &Processor{
		archives: archives,
		scorer:   scorer,
		detector: detector,
		settings: settings,
		now:      time.Now,
	}
}

func (p *Processor) Run(ctx context.Context, req RunRequest) (*report.Report, error) {
	started := p.now()

	rep, err := p.run(ctx, req)

	var counts report.Counts
	if rep != nil {
		counts = rep.Counts()
	}
	p.settings.Observer.RunFinished(counts, p.now().Sub(started), err)

	if err != nil {
		log.Error().
			Err(err).
			Str("account_id", req.AccountID).
			Msg("Chat sentiment run failed")
		return nil, err
	}

	log.Info().
		Str("account_id", req.AccountID).
		Int("total_chats", counts.Total).
		Int("with_customer_messages", counts.WithMessages).
		Int("without_customer_messages", counts.WithoutMessages).
		Msg("Chat sentiment run completed")

	return rep, nil
}

func (p *Processor) run(ctx context.Context, req RunRequest) (*report.Report, error) {
	if err := livechat.ValidateCredentials(req.AccountID, req.Token); err != nil {
		return nil, err
	}
	if err := livechat.CheckDateOrder(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	dateRange, err := livechat.NewDateRange(req.StartDate, req.EndDate, p.now())
	if err != nil {
		return nil, err
	}

	creds := livechat.Credentials{AccountID: req.AccountID, Token: req.Token}
	if region, ok := creds.Region(); ok {
		log.Info().Str("region", region).Msg("Using region")
	}
	log.Info().
		Str("from", dateRange.FromString()).
		Str("to", dateRange.ToString()).
		Msg("Fetching chats")

	var opts []livechat.PagerOption
	if p.settings.MaxPages > 0 {
		opts = append(opts, livechat.WithMaxPages(p.settings.MaxPages))
	}
	pager := livechat.NewPager(p.archives, creds, dateRange, p.settings.PageSize, opts...)
	assembler := report.NewAssembler(dateRange.FromString(), dateRange.ToString())

	for pager.Next(ctx) {
		chats := pager.Chats()
		p.settings.Observer.PageFetched(len(chats))

		for _, chat := range chats {
			row, err := p.summarize(ctx, chat)
			if err != nil {
				return nil, err
			}
			assembler.Add(row)
		}

		log.Info().
			Int("page", pager.Pages()).
			Int("total_chats", assembler.Len()).
			Msg("Processed archive page")
	}
	if err := pager.Err(); err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}

	return assembler.Report(p.now()), nil
}

func (p *Processor) summarize(ctx context.Context, chat livechat.ChatRecord) (report.ChatSummary, error) {
	extraction := ExtractChat(chat, p.detector)

	summary, err := sentiment.Aggregate(ctx, p.scorer, extraction.Messages)
	if err != nil {
		return report.ChatSummary{}, fmt.Errorf("chat %s: %w", extraction.ThreadID, err)
	}

	return report.NewChatSummary(
		extraction.ThreadID,
		extraction.CreatedAt,
		extraction.ClientName,
		extraction.ClientEmail,
		summary,
	), nil
}
