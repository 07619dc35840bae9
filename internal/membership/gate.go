package membership

// CanAccess reports whether a user's tier level grants access to a
// feature requiring requiredLevel. Levels are ordinal; equal level is
// enough.
func CanAccess(userTierLevel, requiredLevel int) bool {
	return userTierLevel >= requiredLevel
}
