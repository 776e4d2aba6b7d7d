package services

import (
	"github.com/tbourn/newmum-companion/internal/content"
	"github.com/tbourn/newmum-companion/internal/domain"
)

// ContentService serves the static catalog with input checks applied.
type ContentService struct{}

// Week returns the stage for w.
func (ContentService) Week(w int) (content.WeeklyStage, error) {
	if !domain.ValidWeek(w) {
		return content.WeeklyStage{}, Validation(MsgWeekRange)
	}
	st, ok := content.Week(w)
	if !ok {
		return content.WeeklyStage{}, NotFound(MsgContentNotFound)
	}
	return st, nil
}

// AllWeeks returns every weekly stage in order.
func (ContentService) AllWeeks() []content.WeeklyStage {
	return content.WeeklyStages()
}

// Birth returns the content for the raw mode string. Case is ignored and an
// empty mode selects vaginal birth.
func (ContentService) Birth(raw string) (content.BirthModeContent, error) {
	mode, known := content.ParseMode(raw)
	if !known {
		return content.BirthModeContent{}, Validation(MsgInvalidMode)
	}
	bc, ok := content.Birth(mode)
	if !ok {
		return content.BirthModeContent{}, NotFound(MsgContentNotFound)
	}
	return bc, nil
}
