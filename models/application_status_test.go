package models

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	legal := map[ApplicationStatus]map[TransitionOp]ApplicationStatus{
		ApplicationStatusDraft:     {TransitionSubmit: ApplicationStatusSubmitted},
		ApplicationStatusSubmitted: {TransitionStartReview: ApplicationStatusInReview},
		ApplicationStatusInReview: {
			TransitionRequestFix: ApplicationStatusNeedsFix,
			TransitionApprove:    ApplicationStatusApproved,
			TransitionReject:     ApplicationStatusRejected,
		},
		ApplicationStatusNeedsFix: {TransitionResubmit: ApplicationStatusSubmitted},
		ApplicationStatusApproved: {},
		ApplicationStatusRejected: {},
	}
	allOps := []TransitionOp{
		TransitionSubmit, TransitionStartReview, TransitionRequestFix,
		TransitionApprove, TransitionReject, TransitionResubmit,
	}

	t.Run(`полная таблица переходов`, func(t *testing.T) {
		for status, allowed := range legal {
			for _, op := range allOps {
				next, err := status.NextStatus(op)
				if expected, ok := allowed[op]; ok {
					require.Nil(t, err, "%v + %v", status, op)
					require.Equal(t, expected, next)
				} else {
					require.NotNil(t, err, "%v + %v", status, op)
					require.True(t, errors.Is(err, ErrIllegalTransition))
				}
			}
		}
	})

	t.Run(`терминальные статусы`, func(t *testing.T) {
		require.True(t, ApplicationStatusApproved.IsTerminal())
		require.True(t, ApplicationStatusRejected.IsTerminal())
		require.False(t, ApplicationStatusInReview.IsTerminal())
	})
}

func TestValidateTransition(t *testing.T) {
	t.Run(`request-fix без причины отклоняется до обращения к хранилищу`, func(t *testing.T) {
		_, err := ApplicationStatusInReview.ValidateTransition(TransitionRequestFix, "")
		require.NotNil(t, err)

		next, err := ApplicationStatusInReview.ValidateTransition(TransitionRequestFix, "missing ID")
		require.Nil(t, err)
		require.Equal(t, ApplicationStatusNeedsFix, next)
	})

	t.Run(`reject требует причину`, func(t *testing.T) {
		_, err := ApplicationStatusInReview.ValidateTransition(TransitionReject, "")
		require.NotNil(t, err)
	})

	t.Run(`submit причину не требует`, func(t *testing.T) {
		next, err := ApplicationStatusDraft.ValidateTransition(TransitionSubmit, "")
		require.Nil(t, err)
		require.Equal(t, ApplicationStatusSubmitted, next)
	})

	t.Run(`жизненный цикл заявки`, func(t *testing.T) {
		status := ApplicationStatusDraft
		for _, step := range []struct {
			op     TransitionOp
			reason string
			next   ApplicationStatus
		}{
			{TransitionSubmit, "", ApplicationStatusSubmitted},
			{TransitionStartReview, "", ApplicationStatusInReview},
			{TransitionRequestFix, "missing ID", ApplicationStatusNeedsFix},
			{TransitionResubmit, "", ApplicationStatusSubmitted},
			{TransitionStartReview, "", ApplicationStatusInReview},
			{TransitionApprove, "", ApplicationStatusApproved},
		} {
			next, err := status.ValidateTransition(step.op, step.reason)
			require.Nil(t, err)
			require.Equal(t, step.next, next)
			status = next
		}
		_, err := status.NextStatus(TransitionSubmit)
		require.True(t, errors.Is(err, ErrIllegalTransition))
	})
}
