package notifier

import (
	"testing"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
)

func TestBodyFor_RoleSpecificCopy(t *testing.T) {
	params := notification.Params{
		"tracking_number": "SHP-A1B2C3D4E5F6",
		"cod_amount":      "200000",
	}

	partnerBody := bodyFor(notification.RolePartner, notification.KindDeliveryCompleted, params)
	customerBody := bodyFor(notification.RoleCustomer, notification.KindDeliveryCompleted, params)

	assert.Contains(t, partnerBody, "COD collected: 200000")
	assert.NotContains(t, customerBody, "COD")
	assert.Contains(t, customerBody, "SHP-A1B2C3D4E5F6")
}

func TestBodyFor_RedeliveryMentionsNextAttempt(t *testing.T) {
	params := notification.Params{
		"tracking_number": "SHP-A1B2C3D4E5F6",
		"reason":          "customer absent",
		"next_attempt":    "Mon, 07 Sep 2026 09:00",
	}

	body := bodyFor(notification.RoleCustomer, notification.KindRedeliveryScheduled, params)

	assert.Contains(t, body, "customer absent")
	assert.Contains(t, body, "Mon, 07 Sep 2026 09:00")
}

func TestTitleFor_UnknownKindFallsBackToKindName(t *testing.T) {
	assert.Equal(t, "something_else", titleFor(notification.Kind("something_else")))
}
