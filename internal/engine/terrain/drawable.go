package terrain

// The setters below store a drawable parameter on the terrain and copy it to
// every existing patch. Patches created later inherit the stored values.

// SetMaterial sets the material of all patches.
func (t *Terrain) SetMaterial(m *Material) {
	t.material = m
	for _, p := range t.patches {
		p.Material = m
	}
}

// SetVisible sets patch visibility.
func (t *Terrain) SetVisible(enable bool) {
	t.drawable.Visible = enable
	t.eachPatch(func(d *DrawableSettings) { d.Visible = enable })
}

// SetCastShadows sets whether patches cast shadows.
func (t *Terrain) SetCastShadows(enable bool) {
	t.drawable.CastShadows = enable
	t.eachPatch(func(d *DrawableSettings) { d.CastShadows = enable })
}

// SetOccluder sets whether patches occlude other drawables.
func (t *Terrain) SetOccluder(enable bool) {
	t.drawable.Occluder = enable
	t.eachPatch(func(d *DrawableSettings) { d.Occluder = enable })
}

// SetOccludee sets whether patches can be occluded.
func (t *Terrain) SetOccludee(enable bool) {
	t.drawable.Occludee = enable
	t.eachPatch(func(d *DrawableSettings) { d.Occludee = enable })
}

// SetDrawDistance sets the maximum draw distance. 0 is unlimited.
func (t *Terrain) SetDrawDistance(distance float32) {
	t.drawable.DrawDistance = distance
	t.eachPatch(func(d *DrawableSettings) { d.DrawDistance = distance })
}

// SetShadowDistance sets the maximum shadow distance. 0 is unlimited.
func (t *Terrain) SetShadowDistance(distance float32) {
	t.drawable.ShadowDistance = distance
	t.eachPatch(func(d *DrawableSettings) { d.ShadowDistance = distance })
}

// SetLodBias sets the LOD bias.
func (t *Terrain) SetLodBias(bias float32) {
	t.drawable.LodBias = bias
	t.eachPatch(func(d *DrawableSettings) { d.LodBias = bias })
}

// SetMaxLights sets the per-pixel light limit. 0 is unlimited.
func (t *Terrain) SetMaxLights(num uint32) {
	t.drawable.MaxLights = num
	t.eachPatch(func(d *DrawableSettings) { d.MaxLights = num })
}

// SetViewMask sets the view mask.
func (t *Terrain) SetViewMask(mask uint32) {
	t.drawable.ViewMask = mask
	t.eachPatch(func(d *DrawableSettings) { d.ViewMask = mask })
}

// SetLightMask sets the light mask.
func (t *Terrain) SetLightMask(mask uint32) {
	t.drawable.LightMask = mask
	t.eachPatch(func(d *DrawableSettings) { d.LightMask = mask })
}

// SetShadowMask sets the shadow mask.
func (t *Terrain) SetShadowMask(mask uint32) {
	t.drawable.ShadowMask = mask
	t.eachPatch(func(d *DrawableSettings) { d.ShadowMask = mask })
}

// SetZoneMask sets the zone mask.
func (t *Terrain) SetZoneMask(mask uint32) {
	t.drawable.ZoneMask = mask
	t.eachPatch(func(d *DrawableSettings) { d.ZoneMask = mask })
}

func (t *Terrain) eachPatch(fn func(d *DrawableSettings)) {
	for _, p := range t.patches {
		fn(&p.Drawable)
	}
}
