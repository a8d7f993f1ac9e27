package fluidsystem

// ParameterCache is the per-evaluation scratch object threaded through
// every property call. Its lifetime is scoped to one fluid-state
// evaluation.
//
// For this fluid system no auxiliary quantities are worth caching, so the
// type carries no data; it exists to keep the call contract uniform with
// fluid systems that do precompute (interpolation indices, mixture
// parameters) per evaluation.
type ParameterCache struct{}
