package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
	"github.com/timedesk/timeclock-backend-go/internal/repository/postgresql"
)

type WorkScheduleServiceImpl struct {
	db *database.DB
	schedule.WorkScheduleRepository
}

func NewWorkScheduleService(db *database.DB, scheduleRepo schedule.WorkScheduleRepository) schedule.WorkScheduleService {
	return &WorkScheduleServiceImpl{
		db:                     db,
		WorkScheduleRepository: scheduleRepo,
	}
}

func callerClaims(ctx context.Context) (userID, companyID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", "", fmt.Errorf("user_id claim is missing or invalid")
	}
	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	roleStr, _ := claims["role"].(string)
	return userID, companyID, user.Role(roleStr), nil
}

// Assign implements schedule.WorkScheduleService.
func (s *WorkScheduleServiceImpl) Assign(ctx context.Context, req schedule.AssignScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	_, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if role != user.RoleAdmin {
		return schedule.ScheduleResponse{}, user.ErrAdminPrivilegeRequired
	}

	from, to := req.ParsedEffectiveRange()

	entity := schedule.UserWorkSchedule{
		UserID:        req.UserID,
		CompanyID:     companyID,
		Name:          req.Name,
		EffectiveFrom: from,
		EffectiveTo:   to,
	}
	for _, dayInput := range req.Days {
		day := schedule.WorkScheduleDay{Weekday: dayInput.Weekday}
		for _, segInput := range dayInput.Segments {
			start, _ := time.Parse("15:04:05", normalizeClock(segInput.StartTime))
			end, _ := time.Parse("15:04:05", normalizeClock(segInput.EndTime))
			day.Segments = append(day.Segments, schedule.WorkScheduleSegment{
				StartTime: start,
				EndTime:   end,
			})
		}
		entity.Days = append(entity.Days, day)
	}

	var created schedule.UserWorkSchedule
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// A previous open-ended schedule hands over the day before the
		// new one starts.
		current, err := s.WorkScheduleRepository.GetActiveForUser(txCtx, req.UserID, from)
		if err != nil {
			return err
		}
		if current != nil {
			if !current.EffectiveFrom.Before(from) {
				return schedule.ErrScheduleOverlap
			}
			if err := s.WorkScheduleRepository.CapEffectiveTo(txCtx, current.ID, from.AddDate(0, 0, -1)); err != nil {
				return err
			}
		}

		created, err = s.WorkScheduleRepository.Create(txCtx, entity)
		return err
	})
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	return schedule.NewScheduleResponse(created), nil
}

func normalizeClock(s string) string {
	if len(s) == 5 {
		return s + ":00"
	}
	return s
}

// ListForUser implements schedule.WorkScheduleService.
func (s *WorkScheduleServiceImpl) ListForUser(ctx context.Context, userID string) ([]schedule.ScheduleResponse, error) {
	callerID, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		userID = callerID
	}
	if userID != callerID && role != user.RoleAdmin && role != user.RoleSupervisor {
		return nil, user.ErrAdminPrivilegeRequired
	}

	schedules, err := s.WorkScheduleRepository.ListByUser(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sch := range schedules {
		responses = append(responses, schedule.NewScheduleResponse(sch))
	}
	return responses, nil
}

// ActiveSegments implements schedule.WorkScheduleService.
func (s *WorkScheduleServiceImpl) ActiveSegments(ctx context.Context, userID string, date time.Time) ([]schedule.WorkScheduleSegment, error) {
	return s.WorkScheduleRepository.GetActiveSegments(ctx, userID, date)
}

// Delete implements schedule.WorkScheduleService.
func (s *WorkScheduleServiceImpl) Delete(ctx context.Context, id string) error {
	_, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return err
	}
	if role != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}

	return s.WorkScheduleRepository.Delete(ctx, id, companyID)
}
