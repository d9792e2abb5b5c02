// Package rowan renders a live 2D physics simulation onto [Ebitengine] for
// debugging and inspection.
//
// Rowan mirrors the simulation rather than owning it: the simulation exposes
// its bodies, shapes and joints through the read-only [Source] interfaces,
// and a [Viewer] keeps a drawable handle for every live shape and joint,
// refreshed each tick. On top of the mirrored scene it draws optional
// overlays (contact points, bounding boxes, origin markers, the broadphase
// structure, a status readout) and a pointer/camera controller with
// drag-to-pan and wheel zoom.
//
// # Quick start
//
// Wrap your simulation in a [Source], then hand it to [Run], which creates a
// window and game loop for you:
//
//	viewer := rowan.New(mySource, rowan.DefaultConfig())
//	rowan.Run(viewer, rowan.RunConfig{
//		Title: "sim debug", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Viewer.Update] and [Viewer.Draw] directly:
//
//	type Game struct{ viewer *rowan.Viewer }
//
//	func (g *Game) Update() error        { g.viewer.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.viewer.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Mirroring contract
//
// Handles are created the first time an entity is observed and destroyed only
// on the source's removal notification, never inferred from absence. Entity
// identifiers must stay unique for as long as a handle is live; an identifier
// seen again after its removal is treated as a brand-new entity.
//
// # Interaction
//
// The built-in controller pans the view with a secondary-button drag (or a
// two-finger touch drag) and zooms with the wheel. Hosts can subscribe to the
// same event stream through [Viewer.Controller], read the live pointer state
// through [Viewer.Pointer], and drive everything synthetically with the
// Inject helpers or a JSON [ScriptRunner].
//
// [Ebitengine]: https://ebitengine.org
package rowan
