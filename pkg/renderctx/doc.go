// Package renderctx holds the per-request configuration views of a
// server-rendered multi-tenant application and the merge stage that
// populates them from a resolved tenant.
//
// Two distinct views exist per request: the RenderContext, whose
// AppConfig is the full server-side render configuration, and the
// ClientPayload, a separate object serialized to the client under the
// __APP_CONFIG__ key. The merge stage runs the tenant's configuration
// through the public visibility filter before touching either view, so
// the client payload can only ever contain fields the backend annotated
// public, and never the annotation tree itself.
//
// When resolution yields no tenant, the configured NotFoundPolicy decides
// the outcome: raise a status or redirect signal for the host, proceed
// rendering with an explicitly nil tenant, or hand off to a custom
// handler.
package renderctx
