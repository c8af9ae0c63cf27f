package shader

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// GlobalState is the per frame input of an effect. Pointer and parallax are
// normalized to -1..1 around the viewport center.
type GlobalState struct {
	Time      float64
	PointerX  float64
	PointerY  float64
	ParallaxX float64
	ParallaxY float64
}

// Apply binds the frame uniforms and the precomputed constants. Call it
// between BeginShaderMode and the draw of texture.
func (e *Effect) Apply(state GlobalState, texture rl.Texture2D) {
	shader := e.Shader
	parameters := e.Parameters

	if parameters.Time != -1 {
		rl.SetShaderValue(shader, parameters.Time, []float32{float32(state.Time)}, rl.ShaderUniformFloat)
	}
	if parameters.Pointer != -1 {
		rl.SetShaderValue(shader, parameters.Pointer, []float32{float32(state.PointerX*0.5 + 0.5), float32(state.PointerY*0.5 + 0.5)}, rl.ShaderUniformVec2)
	}
	if parameters.Parallax != -1 {
		rl.SetShaderValue(shader, parameters.Parallax, []float32{float32(state.ParallaxX*0.5 + 0.5), float32(state.ParallaxY*0.5 + 0.5)}, rl.ShaderUniformVec2)
	}

	w, h := float32(texture.Width), float32(texture.Height)
	if parameters.Resolution != -1 {
		rl.SetShaderValue(shader, parameters.Resolution, []float32{w, h, w, h}, rl.ShaderUniformVec4)
	}
	if parameters.TexelSize != -1 && w > 0 && h > 0 {
		rl.SetShaderValue(shader, parameters.TexelSize, []float32{1.0 / w, 1.0 / h}, rl.ShaderUniformVec2)
	}

	for _, uniform := range e.Uniforms {
		rl.SetShaderValue(shader, uniform.Location, uniform.Values, uniform.Type)
	}
}

func (e *Effect) Unload() {
	if e.Shader.ID != 0 {
		rl.UnloadShader(e.Shader)
		e.Shader = rl.Shader{}
	}
}
