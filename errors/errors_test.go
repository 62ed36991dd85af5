package errors

import "testing"

func TestSentinelWrapping(t *testing.T) {
	t.Run("wrapped sentinel is still detectable", func(t *testing.T) {
		err := Wrap(ErrGeocode, "looking up Chennai, India")
		if !IsGeocodeError(err) {
			t.Error("expected wrapped ErrGeocode to be detected")
		}
		if IsNotFoundError(err) {
			t.Error("geocode error should not match ErrNotFound")
		}
	})

	t.Run("formatted invalid request preserves sentinel", func(t *testing.T) {
		err := NewInvalidRequestError("bad timezone %q", "Mars/Olympus")
		if !IsInvalidRequestError(err) {
			t.Error("expected invalid-request sentinel to survive formatting")
		}
	})

	t.Run("nil is never a sentinel", func(t *testing.T) {
		if IsNotFoundError(nil) || IsInvalidRequestError(nil) || IsGeocodeError(nil) {
			t.Error("nil must not match any sentinel")
		}
	})
}
