package recurrence_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"

	"github.com/pedrosantos/grana/internal/recurrence"
)

func TestRule_Validate(t *testing.T) {
	type testCase struct {
		name    string
		start   civil.Date
		end     *civil.Date
		wantErr error
	}

	endBefore := date(2024, time.January, 1)
	endAfter := date(2024, time.December, 31)
	endSame := date(2024, time.June, 15)

	tests := []testCase{
		{
			name:  "UnboundedRule",
			start: date(2024, time.June, 15),
			end:   nil,
		},
		{
			name:  "EndAfterStart",
			start: date(2024, time.June, 15),
			end:   &endAfter,
		},
		{
			name:  "EndEqualsStart",
			start: date(2024, time.June, 15),
			end:   &endSame,
		},
		{
			name:    "EndBeforeStart",
			start:   date(2024, time.June, 15),
			end:     &endBefore,
			wantErr: recurrence.ErrInvalidRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := &recurrence.Rule{
				Frequency: recurrence.FrequencyMonthly,
				StartDate: tt.start,
				EndDate:   tt.end,
				IsActive:  true,
			}

			err := rule.Validate()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}
