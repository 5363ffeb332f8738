package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAlert(t *testing.T) {
	cases := []struct {
		name       string
		checkedIn  bool
		hour       int
		remindHour int
		want       AlertLevel
	}{
		{"checked in before deadline", true, 10, 18, AlertSafe},
		{"checked in after deadline", true, 20, 18, AlertSafe},
		{"absent in the morning", false, 10, 18, AlertWaiting},
		{"absent one hour before deadline", false, 17, 18, AlertWaiting},
		{"absent exactly at deadline", false, 18, 18, AlertOverdue},
		{"absent past deadline", false, 20, 18, AlertOverdue},
		{"absent at midnight", false, 0, 18, AlertWaiting},
		{"midnight deadline means always overdue when absent", false, 0, 0, AlertOverdue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateAlert(tc.checkedIn, tc.hour, tc.remindHour))
		})
	}
}

func TestEvaluateAlertIsPure(t *testing.T) {
	// 同样的输入反复求值结果一致
	for i := 0; i < 10; i++ {
		assert.Equal(t, AlertOverdue, EvaluateAlert(false, 18, 18))
		assert.Equal(t, AlertWaiting, EvaluateAlert(false, 17, 18))
	}
}
