// Package tenancy identifies, on every server-rendered request, which
// tenant is being served, resolves that tenant's configuration from a
// backend API, and merges a visibility-filtered subset of it into the
// per-request render context and the client-visible payload.
//
// One running instance serves many tenants: branding, API endpoints,
// locale, and feature configuration vary per request without per-tenant
// deployments. The pipeline has three stages, each usable on its own:
//
//   - pkg/tenant: identifier extraction strategies, the policy cache
//     (preload, lazy TTL, disabled), the backend API fetcher, and the
//     resolution service that composes them.
//   - pkg/visibility: the annotation-tree-driven filter deciding which
//     configuration fields a client may see.
//   - pkg/renderctx: the two per-request configuration views, the merge
//     stage, and the not-found policy.
//
// # Usage
//
//	cfg, err := tenancy.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tn, err := tenancy.New(cfg, tenancy.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	tn.Start(ctx)
//	defer tn.Stop()
//
//	// Per request, typically from the render handler:
//	ctx, rc, payload, err := tn.Handle(r.Context(), r)
//	switch e := err.(type) {
//	case *renderctx.StatusError:
//		http.Error(w, http.StatusText(e.Code), e.Code)
//	case *renderctx.RedirectError:
//		http.Redirect(w, r, e.URL, e.Code)
//	default:
//		render(w, rc, payload)
//	}
//
// Configuration is read once at startup from TENANCY_* environment
// variables (see Config); defects like gateway mode without a backend
// URL abort boot rather than surface per request.
package tenancy
