package processor

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/ledger"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/metrics"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/printer"
)

type Processor struct {
	repo             Repo
	duplicateCleaner DuplicateCleaner
	users            UserResolver
	media            MediaFetcher
	transcriber      Transcriber
	extractor        TextExtractor
	dispatcher       Dispatcher
	ledger           LedgerWriter
	imageQueue       ImageQueue
	replier          Replier
	printer          Printer
	metrics          *metrics.Metrics
}

type Config struct {
	Repo             Repo
	DuplicateCleaner DuplicateCleaner
	Users            UserResolver
	Media            MediaFetcher
	Transcriber      Transcriber
	Extractor        TextExtractor
	Dispatcher       Dispatcher
	Ledger           LedgerWriter
	ImageQueue       ImageQueue
	Replier          Replier
	Printer          Printer
	Metrics          *metrics.Metrics
}

func NewProcessor(
	cfg *Config,
) *Processor {
	return &Processor{
		repo:             cfg.Repo,
		duplicateCleaner: cfg.DuplicateCleaner,
		users:            cfg.Users,
		media:            cfg.Media,
		transcriber:      cfg.Transcriber,
		extractor:        cfg.Extractor,
		dispatcher:       cfg.Dispatcher,
		ledger:           cfg.Ledger,
		imageQueue:       cfg.ImageQueue,
		replier:          cfg.Replier,
		printer:          cfg.Printer,
		metrics:          cfg.Metrics,
	}
}

// ProcessMessages handles a webhook batch in arrival order. A failing message never stops
// the ones after it; all failures are returned joined.
func (p *Processor) ProcessMessages(
	ctx context.Context,
	messages []InboundMessage,
) error {
	var finalErr error

	for _, msg := range messages {
		if err := p.safeProcess(ctx, msg); err != nil {
			p.metrics.Error("processor")
			zerolog.Ctx(ctx).Err(err).
				Str("message_id", msg.Info().ProviderMessageID).
				Msg("failed to process message")

			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func (p *Processor) safeProcess(ctx context.Context, msg InboundMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("panic while processing message: %v", r)
		}
	}()

	return p.ProcessMessage(ctx, msg)
}

// ProcessMessage runs the pipeline for one message. Until the inbound row is logged, a
// failure releases the idempotency claim so a redelivery is processed again, and the
// sender is told the message could not be saved.
func (p *Processor) ProcessMessage(
	ctx context.Context,
	msg InboundMessage,
) (err error) {
	info := msg.Info()

	lg := zerolog.Ctx(ctx).With().
		Str("message_id", info.ProviderMessageID).
		Str("kind", string(msg.Kind())).
		Logger()
	ctx = lg.WithContext(ctx)

	p.metrics.Inbound(string(msg.Kind()))

	if dupErr := p.duplicateCleaner.IsDuplicate(ctx, info.ProviderMessageID); dupErr != nil {
		if errors.Is(dupErr, common.ErrDuplicate) {
			lg.Info().Msg("skipping redelivered message")
			return nil
		}

		p.replier.Send(ctx, info.From, printer.SaveFailedText)

		return errors.Wrap(dupErr, "idempotency check failed")
	}

	logged := false
	defer func() {
		if err == nil || logged {
			return
		}

		p.duplicateCleaner.Release(ctx, info.ProviderMessageID)
		p.replier.Send(ctx, info.From, printer.SaveFailedText)
	}()

	resolved, err := p.users.ResolveOrCreate(ctx, info.From, info.DisplayName)
	if err != nil {
		return errors.Wrap(err, "failed to resolve user")
	}

	user := resolved.User
	lg = lg.With().Str("user_id", user.ID).Logger()
	ctx = lg.WithContext(ctx)

	content := p.resolveContent(ctx, msg)

	inbound := &database.ConversationMessage{
		UserID:    user.ID,
		Direction: database.DirectionInbound,
		Kind:      msg.Kind(),
		Content:   content.Text,
		Processed: false,
	}
	if info.ProviderMessageID != "" {
		inbound.ProviderMessageID = lo.ToPtr(info.ProviderMessageID)
	}
	if !info.Timestamp.IsZero() {
		inbound.CreatedAt = info.Timestamp
	}

	inserted, err := p.repo.AddMessage(ctx, inbound)
	if err != nil {
		return errors.Wrap(err, "failed to log inbound message")
	}

	if !inserted {
		lg.Info().Msg("message logged by a concurrent delivery, skipping")
		return nil
	}

	logged = true

	if !resolved.IsRegistered {
		p.replier.Reply(ctx, user, p.printer.Onboarding(user.PhoneNumber))

		return p.markProcessed(ctx, inbound.ID)
	}

	switch {
	case content.Unsupported:
		p.replier.Reply(ctx, user, printer.UnsupportedText)
	case content.MediaUnavailable:
		p.replier.Reply(ctx, user, printer.MediaUnavailableText)
	case content.NotUnderstood:
		p.replier.Reply(ctx, user, printer.AudioNotUnderstoodText)
	default:
		if image, ok := msg.(ImageMessage); ok {
			p.scheduleImage(ctx, user, image, content.Text)
		} else {
			p.reply(ctx, user, content.Text)
		}
	}

	return p.markProcessed(ctx, inbound.ID)
}

func (p *Processor) reply(ctx context.Context, user *database.User, text string) {
	if strings.TrimSpace(text) == "" {
		p.replier.Reply(ctx, user, printer.NotUnderstoodText)
		return
	}

	result := p.dispatcher.Dispatch(ctx, user, text)
	p.replier.Reply(ctx, user, p.ledger.Write(ctx, user, result, text))
}

func (p *Processor) scheduleImage(
	ctx context.Context,
	user *database.User,
	msg ImageMessage,
	rawText string,
) {
	queued := p.imageQueue.Enqueue(ledger.ImageJob{
		User:              *user,
		ProviderMessageID: msg.Envelope.ProviderMessageID,
		MediaID:           msg.MediaID,
		MimeType:          msg.MimeType,
		OriginalText:      rawText,
	})

	if !queued {
		p.metrics.Error("image_queue")
		zerolog.Ctx(ctx).Warn().Msg("image queue is full, dropping structured extraction")
		p.replier.Reply(ctx, user, printer.UnavailableText)
	}
}

func (p *Processor) resolveContent(
	ctx context.Context,
	msg InboundMessage,
) resolvedContent {
	lg := zerolog.Ctx(ctx)

	switch m := msg.(type) {
	case TextMessage:
		return resolvedContent{Text: strings.TrimSpace(m.Body)}
	case AudioMessage:
		file, err := p.media.GetMedia(ctx, m.MediaID)
		if err != nil {
			lg.Err(err).Msg("failed to download audio")
			return resolvedContent{MediaUnavailable: true}
		}

		started := time.Now()
		text, err := p.transcriber.Transcribe(ctx, file.Data, lo.Ternary(file.MimeType != "", file.MimeType, m.MimeType))
		p.metrics.AIRequest("transcription", started, err)

		if err != nil {
			lg.Err(err).Msg("transcription failed, logging empty content")
			return resolvedContent{NotUnderstood: true}
		}

		return resolvedContent{Text: text, NotUnderstood: strings.TrimSpace(text) == ""}
	case ImageMessage:
		caption := strings.TrimSpace(m.Caption)

		file, err := p.media.GetMedia(ctx, m.MediaID)
		if err != nil {
			lg.Err(err).Msg("failed to download image")
			return resolvedContent{MediaUnavailable: true}
		}

		started := time.Now()
		text, err := p.extractor.ExtractText(ctx, file.Data, lo.Ternary(file.MimeType != "", file.MimeType, m.MimeType))
		p.metrics.AIRequest("extract_text", started, err)

		if err != nil {
			lg.Err(err).Msg("image text extraction failed")
			text = ""
		}

		if caption != "" {
			text = strings.TrimSpace(text + "\n" + caption)
		}

		return resolvedContent{Text: text}
	case UnsupportedMessage:
		lg.Info().Err(errors.Wrapf(common.ErrUnsupportedMessage, "type %q", m.Type)).Msg("replying with supported types")
		return resolvedContent{Unsupported: true}
	default:
		lg.Warn().Err(common.ErrUnsupportedMessage).Msgf("unexpected message %T", msg)
		return resolvedContent{Unsupported: true}
	}
}

func (p *Processor) markProcessed(ctx context.Context, id string) error {
	if err := p.repo.MarkProcessed(ctx, id); err != nil {
		return errors.Wrap(err, "failed to mark message processed")
	}

	return nil
}
