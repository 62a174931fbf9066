package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/KirkDiggler/sanma/internal/common/clock"
	"github.com/KirkDiggler/sanma/internal/common/uuid"
	"github.com/KirkDiggler/sanma/internal/ledger"
	"github.com/KirkDiggler/sanma/internal/models"
	sessionRepo "github.com/KirkDiggler/sanma/internal/repositories/session_ledger"
	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/charmbracelet/log"
)

// service implements the Service interface
type service struct {
	ruleSets       []*settlement.RuleSet
	ruleSetsByName map[string]*settlement.RuleSet
	defaultRuleSet string

	sessionRepo   sessionRepo.Repository
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *log.Logger

	// mu serialises every operation; a ledger does no locking of its own
	mu      sync.Mutex
	ledgers map[string]*ledger.Ledger
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.Logger == nil {
		return nil, ErrNilLogger
	}

	if len(cfg.RuleSets) == 0 {
		return nil, ErrNoRuleSets
	}

	byName := make(map[string]*settlement.RuleSet, len(cfg.RuleSets))
	for _, rules := range cfg.RuleSets {
		if err := rules.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byName[rules.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRuleSet, rules.Name)
		}
		byName[rules.Name] = rules
	}

	defaultRuleSet := cfg.DefaultRuleSet
	if defaultRuleSet == "" {
		defaultRuleSet = cfg.RuleSets[0].Name
	}
	if _, ok := byName[defaultRuleSet]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleSetNotFound, defaultRuleSet)
	}

	return &service{
		ruleSets:       cfg.RuleSets,
		ruleSetsByName: byName,
		defaultRuleSet: defaultRuleSet,
		sessionRepo:    cfg.SessionRepo,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		logger:         cfg.Logger,
		ledgers:        make(map[string]*ledger.Ledger),
	}, nil
}

// ListRuleSets returns the configured rule sets
func (s *service) ListRuleSets(ctx context.Context, input *ListRuleSetsInput) (*ListRuleSetsOutput, error) {
	ruleSets := make([]*settlement.RuleSet, len(s.ruleSets))
	copy(ruleSets, s.ruleSets)

	return &ListRuleSetsOutput{
		RuleSets:       ruleSets,
		DefaultRuleSet: s.defaultRuleSet,
	}, nil
}

// StartSession starts a new session in a channel
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.ChannelID == "" {
		return nil, ErrMissingChannel
	}

	if len(input.PlayerNames) > settlement.Players {
		return nil, fmt.Errorf("%w: expected at most %d player names, got %d",
			settlement.ErrInvalidInput, settlement.Players, len(input.PlayerNames))
	}

	name := input.RuleSetName
	if name == "" {
		name = s.defaultRuleSet
	}

	rules, ok := s.ruleSetsByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleSetNotFound, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.sessionRepo.GetCurrentSession(ctx, &sessionRepo.GetCurrentSessionInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}

	// Each session keeps its own copy so later config changes leave it alone
	snapshot := *rules
	session := &models.Session{
		ID:        s.uuidGenerator.NewUUID(),
		ChannelID: input.ChannelID,
		Rules:     &snapshot,
		CreatedAt: s.clock.Now(),
		CreatedBy: input.CreatedBy,
		Active:    true,
	}
	for seat := range session.PlayerNames {
		session.PlayerNames[seat] = defaultPlayerName(seat)
	}
	applyPlayerNames(session, input.PlayerNames)

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	output := &StartSessionOutput{Session: session}
	if current.Session != nil {
		output.ReplacedSessionID = current.Session.ID
		delete(s.ledgers, current.Session.ID)
	}
	s.ledgers[session.ID] = ledger.New()

	s.logger.Info("session started",
		"session", session.ID,
		"channel", session.ChannelID,
		"rules", rules.Name,
		"replaced", output.ReplacedSessionID)

	return output, nil
}

// GetCurrentSession returns the active session of a channel
func (s *service) GetCurrentSession(ctx context.Context, input *GetCurrentSessionInput) (*GetCurrentSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.ChannelID == "" {
		return nil, ErrMissingChannel
	}

	current, err := s.sessionRepo.GetCurrentSession(ctx, &sessionRepo.GetCurrentSessionInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}

	return &GetCurrentSessionOutput{Session: current.Session}, nil
}

// RenamePlayers changes the display names of the seats
func (s *service) RenamePlayers(ctx context.Context, input *RenamePlayersInput) (*RenamePlayersOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if len(input.PlayerNames) > settlement.Players {
		return nil, fmt.Errorf("%w: expected at most %d player names, got %d",
			settlement.ErrInvalidInput, settlement.Players, len(input.PlayerNames))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(ctx, input.ChannelID)
	if err != nil {
		return nil, err
	}

	applyPlayerNames(session, input.PlayerNames)

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &RenamePlayersOutput{Session: session}, nil
}

// SettleRound settles one round and adds it to the session ledger.
// Nothing is stored unless every step succeeds.
func (s *service) SettleRound(ctx context.Context, input *SettleRoundInput) (*SettleRoundOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(ctx, input.ChannelID)
	if err != nil {
		return nil, err
	}
	rules := session.Rules

	completed, err := settlement.CompleteScores(input.Scores, rules.Origin)
	if err != nil {
		return nil, err
	}

	scores, err := settlement.RequireComplete(completed)
	if err != nil {
		return nil, err
	}

	result, err := settlement.Settle(scores, rules)
	if err != nil {
		return nil, err
	}

	chipCounts := input.ChipCounts
	if len(chipCounts) == 0 {
		chipCounts = make([]int, settlement.Players)
	}

	chipGains, err := settlement.ChipGainsFor(chipCounts, rules)
	if err != nil {
		return nil, err
	}

	sessionLedger, err := s.ledgerFor(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	record, err := ledger.NewRecord(result, chipGains, rules)
	if err != nil {
		return nil, err
	}
	record.ID = s.uuidGenerator.NewUUID()
	record.SessionID = session.ID
	record.Timestamp = s.clock.Now()
	copy(record.RawScores[:], scores)
	copy(record.ChipCounts[:], chipCounts)

	if err := s.sessionRepo.AddRecord(ctx, &sessionRepo.AddRecordInput{Record: record}); err != nil {
		return nil, fmt.Errorf("failed to save round: %w", err)
	}
	sessionLedger.Append(record)

	if sum := result.Sum(); sum != 0 {
		s.logger.Debug("round result is off zero after rounding", "session", session.ID, "sum", sum)
	}

	s.logger.Info("round settled",
		"session", session.ID,
		"round", sessionLedger.Len(),
		"result", result,
		"final", record.Final)

	return &SettleRoundOutput{
		Session:     session,
		Record:      record,
		RoundNumber: sessionLedger.Len(),
		Totals:      sessionLedger.Totals(),
	}, nil
}

// GetTotals returns the session history and running totals
func (s *service) GetTotals(ctx context.Context, input *GetTotalsInput) (*GetTotalsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(ctx, input.ChannelID)
	if err != nil {
		return nil, err
	}

	sessionLedger, err := s.ledgerFor(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return &GetTotalsOutput{
		Session: session,
		Records: sessionLedger.Records(),
		Totals:  sessionLedger.Totals(),
	}, nil
}

// ResetSession clears every round of the session
func (s *service) ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(ctx, input.ChannelID)
	if err != nil {
		return nil, err
	}

	sessionLedger, err := s.ledgerFor(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	output := &ResetSessionOutput{
		Session:        session,
		PreviousTotals: sessionLedger.Totals(),
		RoundsCleared:  sessionLedger.Len(),
	}

	if err := s.sessionRepo.DeleteRecords(ctx, &sessionRepo.DeleteRecordsInput{SessionID: session.ID}); err != nil {
		return nil, fmt.Errorf("failed to delete rounds: %w", err)
	}
	sessionLedger.Reset()

	s.logger.Info("session reset", "session", session.ID, "rounds", output.RoundsCleared)

	return output, nil
}

// EndSession closes the active session of a channel
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(ctx, input.ChannelID)
	if err != nil {
		return nil, err
	}

	sessionLedger, err := s.ledgerFor(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	session.Active = false
	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		session.Active = true
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	delete(s.ledgers, session.ID)

	s.logger.Info("session ended", "session", session.ID, "rounds", sessionLedger.Len())

	return &EndSessionOutput{
		Session:     session,
		FinalTotals: sessionLedger.Totals(),
		Rounds:      sessionLedger.Len(),
	}, nil
}

// activeSession returns the channel's session or ErrNoActiveSession
func (s *service) activeSession(ctx context.Context, channelID string) (*models.Session, error) {
	if channelID == "" {
		return nil, ErrMissingChannel
	}

	current, err := s.sessionRepo.GetCurrentSession(ctx, &sessionRepo.GetCurrentSessionInput{
		ChannelID: channelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}

	if current.Session == nil {
		return nil, ErrNoActiveSession
	}

	if err := current.Session.Rules.Validate(); err != nil {
		return nil, err
	}

	return current.Session, nil
}

// ledgerFor returns the cached ledger of a session, loading it from the
// repository the first time. The caller must hold s.mu.
func (s *service) ledgerFor(ctx context.Context, sessionID string) (*ledger.Ledger, error) {
	if cached, ok := s.ledgers[sessionID]; ok {
		return cached, nil
	}

	stored, err := s.sessionRepo.GetRecords(ctx, &sessionRepo.GetRecordsInput{SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to load rounds: %w", err)
	}

	loaded := ledger.New()
	for _, record := range stored.Records {
		loaded.Append(record)
	}
	s.ledgers[sessionID] = loaded

	s.logger.Debug("ledger loaded", "session", sessionID, "rounds", loaded.Len())

	return loaded, nil
}

func applyPlayerNames(session *models.Session, names []string) {
	for seat, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			session.PlayerNames[seat] = name
		}
	}
}

func defaultPlayerName(seat int) string {
	return fmt.Sprintf("Player %d", seat+1)
}
