package analytics

import (
	"time"

	"github.com/Vileyy/admin-halora-app/internal/model"
)

// DeriveVoucherStatus computes the status a voucher has at now. An elapsed end
// date wins over everything, a future start date wins over the stored status.
func DeriveVoucherStatus(startDate, endDate int64, persisted model.VoucherStatus, now time.Time) model.VoucherStatus {
	ms := now.UnixMilli()
	switch {
	case endDate < ms:
		return model.VoucherStatusExpired
	case startDate > ms:
		return model.VoucherStatusInactive
	default:
		return persisted
	}
}

// ApplyVoucherStatus returns copies of vouchers with Status replaced by the effective status.
func ApplyVoucherStatus(vouchers []model.Voucher, now time.Time) []model.Voucher {
	out := make([]model.Voucher, len(vouchers))
	for i, v := range vouchers {
		v.Status = DeriveVoucherStatus(v.StartDate, v.EndDate, v.Status, now)
		out[i] = v
	}
	return out
}
