// Package fidget is a haptic fidget-toy kit for [Ebitengine]: a swipeable
// carousel of small physical toys whose feel comes from a haptic engine
// rather than from graphics.
//
// The package provides the interaction core only — gesture
// classification, particle physics, collision-to-haptic mapping, a gear
// and RPM engine simulation, drag springs, and the snapping carousel
// that hosts them. Rendering and audio stay in the host application; the
// host hands the carousel a [Device] for haptic output and a
// [TiltSource] for accelerometer input and steps everything once per
// frame.
//
// # Quick start
//
// Build a [Haptics] front end over your platform's haptic device, a
// [Classifier] fed by a [PointerSource], and a [Carousel] of toys:
//
//	h := fidget.NewHaptics(myDevice)
//	cls := fidget.NewClassifier()
//	ptr := fidget.NewPointerSource(cls)
//
//	car := fidget.NewCarousel(cls, h, pageWidth, scale,
//		fidget.NewShakerToy(pageSize, tilt, h),
//		fidget.NewThrottleToy(pageSize, cls, h, scale),
//	)
//
// then, inside your [ebiten.Game] Update:
//
//	ptr.Poll()
//	cls.Update(dt)
//	car.Update(dt)
//	cls.ClearInteractionFlags()
//
// # Toys
//
// [ShakerToy] is a tilt-driven particle shaker ([Shaker] plus
// [CollisionHaptics]). [ThrottleToy] wraps the [Engine] gear/RPM state
// machine behind pedal and shift buttons. [SpringGridToy] is a grid of
// [DragSpring] buttons, one per [HapticStyle]. [SoundboardToy] plays
// named haptic patterns, and [SteeringToy] clicks through detents as the
// device tilts. All toys satisfy [Toy] and can be mixed freely in a
// carousel.
//
// Haptic calls are fire-and-forget: with a nil device everything runs
// silently, so the whole package is testable headless.
//
// [Ebitengine]: https://ebitengine.org
package fidget
