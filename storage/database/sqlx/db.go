package sqlxrepos

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func int64s(ints []int) pq.Int64Array {
	arr := make(pq.Int64Array, 0, len(ints))
	for _, i := range ints {
		arr = append(arr, int64(i))
	}
	return arr
}
