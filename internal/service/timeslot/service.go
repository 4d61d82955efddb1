package timeslot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/timedesk/timeclock-backend-go/internal/domain/timeslot"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
)

type TimeRegisterServiceImpl struct {
	timeslot.TimeRegisterRepository
	schedule.WorkScheduleRepository
	location *time.Location
}

func NewTimeRegisterService(
	registerRepo timeslot.TimeRegisterRepository,
	scheduleRepo schedule.WorkScheduleRepository,
	location *time.Location,
) timeslot.TimeRegisterService {
	return &TimeRegisterServiceImpl{
		TimeRegisterRepository: registerRepo,
		WorkScheduleRepository: scheduleRepo,
		location:               location,
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

// dateOf truncates a timestamp to its calendar date in the service
// timezone.
func (s *TimeRegisterServiceImpl) dateOf(t time.Time) time.Time {
	local := t.In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// SetTime implements timeslot.TimeRegisterService.
func (s *TimeRegisterServiceImpl) SetTime(ctx context.Context, req timeslot.SetTimeRequest) (timeslot.SetTimeResponse, error) {
	if err := req.Validate(); err != nil {
		return timeslot.SetTimeResponse{}, err
	}

	userID, companyID, _, err := callerClaims(ctx)
	if err != nil {
		return timeslot.SetTimeResponse{}, err
	}

	now := time.Now().In(s.location)
	today := s.dateOf(now)

	open, err := s.TimeRegisterRepository.GetOpenSlot(ctx, userID, today)
	if err != nil {
		return timeslot.SetTimeResponse{}, fmt.Errorf("failed to look up open slot: %w", err)
	}

	if open != nil {
		closed, err := s.closeAt(ctx, *open, now, timeslot.SlotStatusClosed)
		if err != nil {
			return timeslot.SetTimeResponse{}, err
		}
		return timeslot.SetTimeResponse{
			Action:   "closed",
			Register: timeslot.NewTimeRegisterResponse(closed),
		}, nil
	}

	opened, err := s.OpenSlot(ctx, userID, companyID, now, req.Comments, req.Project, req.DeviceID)
	if err != nil {
		return timeslot.SetTimeResponse{}, err
	}
	return timeslot.SetTimeResponse{
		Action:   "opened",
		Register: timeslot.NewTimeRegisterResponse(opened),
	}, nil
}

// OpenSlot implements timeslot.TimeRegisterService.
func (s *TimeRegisterServiceImpl) OpenSlot(ctx context.Context, userID, companyID string, ts time.Time, comments, project, deviceID *string) (timeslot.TimeRegister, error) {
	date := s.dateOf(ts)

	open, err := s.TimeRegisterRepository.GetOpenSlot(ctx, userID, date)
	if err != nil {
		return timeslot.TimeRegister{}, fmt.Errorf("failed to look up open slot: %w", err)
	}
	if open != nil {
		return timeslot.TimeRegister{}, timeslot.ErrSlotAlreadyOpen
	}

	slotNumber := 1
	last, err := s.TimeRegisterRepository.GetLastSlot(ctx, userID, date)
	if err != nil {
		return timeslot.TimeRegister{}, fmt.Errorf("failed to look up last slot: %w", err)
	}
	dayTotal := timeslot.ZeroDuration
	if last != nil {
		slotNumber = last.Slot + 1
		dayTotal = last.TotalTime
	}

	segments, err := s.WorkScheduleRepository.GetActiveSegments(ctx, userID, date)
	if err != nil {
		return timeslot.TimeRegister{}, fmt.Errorf("failed to load schedule segments: %w", err)
	}

	scheduleType := Classify(ts, ts, segments)
	justification := timeslot.JustificationCompleted
	if scheduleType != timeslot.ScheduleTypeNormal {
		justification = timeslot.JustificationPending
	}

	reg := timeslot.TimeRegister{
		UserID:              userID,
		CompanyID:           companyID,
		Date:                date,
		HourStart:           ts,
		HourEnd:             ts,
		Slot:                slotNumber,
		Status:              timeslot.SlotStatusOpen,
		TotalSlotTime:       timeslot.ZeroDuration,
		TotalTime:           dayTotal,
		Comments:            comments,
		Project:             project,
		DeviceID:            deviceID,
		ScheduleType:        scheduleType,
		JustificationStatus: justification,
	}

	created, err := s.TimeRegisterRepository.Create(ctx, reg)
	if err != nil {
		return timeslot.TimeRegister{}, err
	}
	return created, nil
}

// CloseSlot implements timeslot.TimeRegisterService.
func (s *TimeRegisterServiceImpl) CloseSlot(ctx context.Context, slotID string, ts time.Time, status timeslot.SlotStatus) (timeslot.TimeRegister, error) {
	_, companyID, _, err := callerClaims(ctx)
	if err != nil {
		return timeslot.TimeRegister{}, err
	}

	reg, err := s.TimeRegisterRepository.GetByID(ctx, slotID, companyID)
	if err != nil {
		return timeslot.TimeRegister{}, err
	}
	if !reg.IsOpen() {
		return timeslot.TimeRegister{}, timeslot.ErrSlotNotOpen
	}

	return s.closeAt(ctx, reg, ts, status)
}

// closeAt closes an open slot at ts, computing the slot duration and the
// day's cumulative total. The conditional update in the repository keeps
// a concurrent double-close from landing twice.
func (s *TimeRegisterServiceImpl) closeAt(ctx context.Context, reg timeslot.TimeRegister, ts time.Time, status timeslot.SlotStatus) (timeslot.TimeRegister, error) {
	if ts.Before(reg.HourStart) {
		return timeslot.TimeRegister{}, timeslot.ErrInvalidTimeRange
	}

	slotTime := timeslot.DurationBetween(reg.HourStart, ts)

	dayTotal, err := s.dayTotalBefore(ctx, reg)
	if err != nil {
		return timeslot.TimeRegister{}, err
	}
	total, err := timeslot.SumDurations([]string{dayTotal, slotTime})
	if err != nil {
		return timeslot.TimeRegister{}, err
	}

	closed, err := s.TimeRegisterRepository.CloseSlot(ctx, reg.ID, ts, slotTime, total, status)
	if err != nil {
		return timeslot.TimeRegister{}, err
	}

	// Re-classify with the full interval now that the end is known.
	segments, err := s.WorkScheduleRepository.GetActiveSegments(ctx, reg.UserID, reg.Date)
	if err != nil {
		return timeslot.TimeRegister{}, fmt.Errorf("failed to load schedule segments: %w", err)
	}
	scheduleType := Classify(closed.HourStart, closed.HourEnd, segments)
	if scheduleType != closed.ScheduleType {
		justification := closed.JustificationStatus
		if scheduleType != timeslot.ScheduleTypeNormal && justification != timeslot.JustificationCompleted {
			justification = timeslot.JustificationPending
		}
		comments := ""
		if closed.Comments != nil {
			comments = *closed.Comments
		}
		if err := s.TimeRegisterRepository.UpdateJustification(ctx, closed.ID, comments, scheduleType, justification); err != nil {
			return timeslot.TimeRegister{}, err
		}
		closed.ScheduleType = scheduleType
		closed.JustificationStatus = justification
	}

	return closed, nil
}

// dayTotalBefore sums the closed slots of the register's day, excluding
// the register itself.
func (s *TimeRegisterServiceImpl) dayTotalBefore(ctx context.Context, reg timeslot.TimeRegister) (string, error) {
	registers, err := s.TimeRegisterRepository.ListByDate(ctx, reg.UserID, reg.Date)
	if err != nil {
		return "", fmt.Errorf("failed to list day slots: %w", err)
	}

	durations := make([]string, 0, len(registers))
	for _, r := range registers {
		if r.ID == reg.ID || r.IsOpen() {
			continue
		}
		durations = append(durations, r.TotalSlotTime)
	}
	return timeslot.SumDurations(durations)
}

// SetNewTime implements timeslot.TimeRegisterService.
func (s *TimeRegisterServiceImpl) SetNewTime(ctx context.Context, req timeslot.SetNewTimeRequest) (timeslot.TimeRegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return timeslot.TimeRegisterResponse{}, err
	}

	userID, companyID, _, err := callerClaims(ctx)
	if err != nil {
		return timeslot.TimeRegisterResponse{}, err
	}

	start, end := req.ParsedRange()
	start = start.In(s.location)
	end = end.In(s.location)
	date := s.dateOf(start)

	slotNumber := 1
	last, err := s.TimeRegisterRepository.GetLastSlot(ctx, userID, date)
	if err != nil {
		return timeslot.TimeRegisterResponse{}, fmt.Errorf("failed to look up last slot: %w", err)
	}
	if last != nil {
		slotNumber = last.Slot + 1
	}

	slotTime := timeslot.DurationBetween(start, end)

	reg := timeslot.TimeRegister{
		UserID:              userID,
		CompanyID:           companyID,
		Date:                date,
		HourStart:           start,
		HourEnd:             end,
		Slot:                slotNumber,
		Status:              timeslot.SlotStatusClosed,
		TotalSlotTime:       slotTime,
		TotalTime:           slotTime,
		Comments:            req.Comments,
		Project:             req.Project,
		DeviceID:            req.DeviceID,
		ScheduleType:        timeslot.ScheduleTypeManual,
		JustificationStatus: timeslot.JustificationPending,
	}

	dayTotal, err := s.dayTotalBefore(ctx, reg)
	if err != nil {
		return timeslot.TimeRegisterResponse{}, err
	}
	reg.TotalTime, err = timeslot.SumDurations([]string{dayTotal, slotTime})
	if err != nil {
		return timeslot.TimeRegisterResponse{}, err
	}

	created, err := s.TimeRegisterRepository.Create(ctx, reg)
	if err != nil {
		return timeslot.TimeRegisterResponse{}, err
	}
	return timeslot.NewTimeRegisterResponse(created), nil
}

// GetByDate implements timeslot.TimeRegisterService.
func (s *TimeRegisterServiceImpl) GetByDate(ctx context.Context, req timeslot.GetByDateRequest) (timeslot.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timeslot.DayResponse{}, err
	}

	userID, _, _, err := callerClaims(ctx)
	if err != nil {
		return timeslot.DayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	registers, err := s.TimeRegisterRepository.ListByDate(ctx, userID, date)
	if err != nil {
		return timeslot.DayResponse{}, fmt.Errorf("failed to list day slots: %w", err)
	}

	return buildDayResponse(req.Date, registers)
}

func buildDayResponse(date string, registers []timeslot.TimeRegister) (timeslot.DayResponse, error) {
	resp := timeslot.DayResponse{
		Date:      date,
		Registers: make([]timeslot.TimeRegisterResponse, 0, len(registers)),
	}

	durations := make([]string, 0, len(registers))
	for _, r := range registers {
		resp.Registers = append(resp.Registers, timeslot.NewTimeRegisterResponse(r))
		if !r.IsOpen() {
			durations = append(durations, r.TotalSlotTime)
		}
	}

	total, err := timeslot.SumDurations(durations)
	if err != nil {
		return timeslot.DayResponse{}, err
	}
	resp.TotalTime = total
	return resp, nil
}

// GetRange implements timeslot.TimeRegisterService.
func (s *TimeRegisterServiceImpl) GetRange(ctx context.Context, req timeslot.GetRangeRequest) (timeslot.RangeResponse, error) {
	if err := req.Validate(); err != nil {
		return timeslot.RangeResponse{}, err
	}

	callerID, _, role, err := callerClaims(ctx)
	if err != nil {
		return timeslot.RangeResponse{}, err
	}

	targetID := callerID
	if req.UserID != nil && *req.UserID != callerID {
		if role != user.RoleAdmin && role != user.RoleSupervisor {
			return timeslot.RangeResponse{}, timeslot.ErrUnauthorized
		}
		targetID = *req.UserID
	}

	dateStart, _ := time.Parse("2006-01-02", req.DateStart)
	dateEnd, _ := time.Parse("2006-01-02", req.DateEnd)

	registers, err := s.TimeRegisterRepository.ListByRange(ctx, targetID, dateStart, dateEnd)
	if err != nil {
		return timeslot.RangeResponse{}, fmt.Errorf("failed to list range slots: %w", err)
	}

	resp := timeslot.RangeResponse{
		DateStart: req.DateStart,
		DateEnd:   req.DateEnd,
		Days:      []timeslot.DayResponse{},
	}

	byDay := make(map[string][]timeslot.TimeRegister)
	for _, r := range registers {
		key := r.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], r)
	}

	var rangeDurations []string
	for d := dateStart; !d.After(dateEnd); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		dayRegisters, ok := byDay[key]
		if !ok {
			continue
		}
		day, err := buildDayResponse(key, dayRegisters)
		if err != nil {
			return timeslot.RangeResponse{}, err
		}
		resp.Days = append(resp.Days, day)
		rangeDurations = append(rangeDurations, day.TotalTime)
	}

	total, err := timeslot.SumDurations(rangeDurations)
	if err != nil {
		return timeslot.RangeResponse{}, err
	}
	resp.TotalTime = total
	return resp, nil
}

// Justify implements timeslot.TimeRegisterService.
func (s *TimeRegisterServiceImpl) Justify(ctx context.Context, req timeslot.JustifySlotRequest) (timeslot.TimeRegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return timeslot.TimeRegisterResponse{}, err
	}

	callerID, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return timeslot.TimeRegisterResponse{}, err
	}

	reg, err := s.TimeRegisterRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return timeslot.TimeRegisterResponse{}, err
	}
	if reg.UserID != callerID && role != user.RoleAdmin {
		return timeslot.TimeRegisterResponse{}, timeslot.ErrUnauthorized
	}

	scheduleType := reg.ScheduleType
	if req.ScheduleType != nil {
		scheduleType = timeslot.ScheduleType(*req.ScheduleType)
	}

	if err := s.TimeRegisterRepository.UpdateJustification(ctx, reg.ID, req.Comments, scheduleType, timeslot.JustificationCompleted); err != nil {
		return timeslot.TimeRegisterResponse{}, err
	}

	reg.Comments = &req.Comments
	reg.ScheduleType = scheduleType
	reg.JustificationStatus = timeslot.JustificationCompleted
	return timeslot.NewTimeRegisterResponse(reg), nil
}

// Delete implements timeslot.TimeRegisterService.
func (s *TimeRegisterServiceImpl) Delete(ctx context.Context, id string) error {
	_, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return err
	}
	if role != user.RoleAdmin {
		return timeslot.ErrUnauthorized
	}

	return s.TimeRegisterRepository.Delete(ctx, id, companyID)
}
