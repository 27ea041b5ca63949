package models

import (
	"fmt"

	"github.com/pkg/errors"
)

type ApplicationStatus string

const (
	ApplicationStatusDraft     ApplicationStatus = "DRAFT"
	ApplicationStatusSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationStatusInReview  ApplicationStatus = "IN_REVIEW"
	ApplicationStatusNeedsFix  ApplicationStatus = "NEEDS_FIX"
	ApplicationStatusApproved  ApplicationStatus = "APPROVED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
)

// Именованная операция перехода статуса заявки
type TransitionOp string

const (
	TransitionSubmit      TransitionOp = "submit"
	TransitionStartReview TransitionOp = "start-review"
	TransitionRequestFix  TransitionOp = "request-fix"
	TransitionApprove     TransitionOp = "approve"
	TransitionReject      TransitionOp = "reject"
	TransitionResubmit    TransitionOp = "resubmit"
)

// Проверяется через errors.Is до обращения к хранилищу
var ErrIllegalTransition = errors.New("недопустимый переход статуса")

var transitionTable = map[ApplicationStatus]map[TransitionOp]ApplicationStatus{
	ApplicationStatusDraft: {
		TransitionSubmit: ApplicationStatusSubmitted,
	},
	ApplicationStatusSubmitted: {
		TransitionStartReview: ApplicationStatusInReview,
	},
	ApplicationStatusInReview: {
		TransitionRequestFix: ApplicationStatusNeedsFix,
		TransitionApprove:    ApplicationStatusApproved,
		TransitionReject:     ApplicationStatusRejected,
	},
	ApplicationStatusNeedsFix: {
		TransitionResubmit: ApplicationStatusSubmitted,
	},
	// APPROVED и REJECTED терминальные, переходов нет
}

func (s ApplicationStatus) NextStatus(op TransitionOp) (ApplicationStatus, error) {
	allowed, ok := transitionTable[s]
	if !ok || len(allowed) == 0 {
		return "", errors.Wrapf(ErrIllegalTransition, "статус %v является конечным", s)
	}
	next, ok := allowed[op]
	if !ok {
		return "", errors.Wrapf(ErrIllegalTransition, "операция %v недоступна из статуса %v", op, s)
	}
	return next, nil
}

// Для request-fix и reject причина обязательна
func ReasonRequired(op TransitionOp) bool {
	return op == TransitionRequestFix || op == TransitionReject
}

func (s ApplicationStatus) ValidateTransition(op TransitionOp, reason string) (ApplicationStatus, error) {
	next, err := s.NextStatus(op)
	if err != nil {
		return "", err
	}
	if ReasonRequired(op) && reason == "" {
		return "", fmt.Errorf("для операции %v необходимо указать причину", op)
	}
	return next, nil
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

func (s ApplicationStatus) IsEditable() bool {
	return s == ApplicationStatusDraft || s == ApplicationStatusNeedsFix
}

// Операции, доступные самому заявителю
func ApplicantOps() map[TransitionOp]bool {
	return map[TransitionOp]bool{
		TransitionSubmit:   true,
		TransitionResubmit: true,
	}
}
