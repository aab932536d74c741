package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/gym/members", "200"))

	RecordHTTPRequest("GET", "/api/gym/members", "200", 0.05)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/gym/members", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordSubscription(t *testing.T) {
	before := testutil.ToFloat64(SubscriptionsCreatedTotal.WithLabelValues("gym_manager"))

	RecordSubscription("gym_manager")

	after := testutil.ToFloat64(SubscriptionsCreatedTotal.WithLabelValues("gym_manager"))
	assert.Equal(t, before+1, after)
}

func TestRecordPayment(t *testing.T) {
	before := testutil.ToFloat64(PaymentsRecordedTotal.WithLabelValues("member_subscription", "cash"))

	RecordPayment("member_subscription", "cash")

	after := testutil.ToFloat64(PaymentsRecordedTotal.WithLabelValues("member_subscription", "cash"))
	assert.Equal(t, before+1, after)
}

func TestRecordCheckInAndOut(t *testing.T) {
	inBefore := testutil.ToFloat64(CheckInsTotal)
	outBefore := testutil.ToFloat64(CheckOutsTotal)

	RecordCheckIn()
	RecordCheckOut()

	assert.Equal(t, inBefore+1, testutil.ToFloat64(CheckInsTotal))
	assert.Equal(t, outBefore+1, testutil.ToFloat64(CheckOutsTotal))
}
