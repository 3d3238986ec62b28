package shader

import (
	"fmt"

	"github.com/Faultbox/snowtrack/internal/engine/lighting"
)

// ClearColor is the sky and fog color.
var ClearColor = [3]float32{121.0 / 255, 226.0 / 255, 253.0 / 255}

// Fog distances in meters.
const (
	FogStart = 60.0
	FogEnd   = 140.0
)

// The "%d" markers are filled by TrackSources.
const trackVertexSrc = `#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vUV;
out float vViewDepth;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vec4 view = uView * world;
    vWorldPos = world.xyz;
    vNormal = mat3(uModel) * aNormal;
    vUV = aUV;
    vViewDepth = -view.z;
    gl_Position = uProjection * view;
}
`

const trackFragmentSrc = `#version 410 core

#define MAX_POINT_LIGHTS %d
#define MAX_SUNS %d

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vUV;
in float vViewDepth;

uniform vec3 uBaseColor;
uniform vec3 uAmbient;

uniform int uSunCount;
uniform vec3 uSunDirections[MAX_SUNS];
uniform vec3 uSunColors[MAX_SUNS];

uniform int uPointLightCount;
uniform vec3 uPointLightPositions[MAX_POINT_LIGHTS];
uniform vec3 uPointLightColors[MAX_POINT_LIGHTS];
uniform float uPointLightRanges[MAX_POINT_LIGHTS];
uniform float uPointLightIntensities[MAX_POINT_LIGHTS];

uniform vec3 uFogColor;
uniform float uFogStart;
uniform float uFogEnd;

out vec4 FragColor;

void main() {
    vec3 n = normalize(vNormal);
    vec3 light = uAmbient;

    for (int i = 0; i < uSunCount; i++) {
        light += uSunColors[i] * max(dot(n, -uSunDirections[i]), 0.0);
    }

    for (int i = 0; i < uPointLightCount; i++) {
        vec3 toLight = uPointLightPositions[i] - vWorldPos;
        float dist = length(toLight);
        if (dist >= uPointLightRanges[i]) {
            continue;
        }
        float atten = 1.0 - dist / uPointLightRanges[i];
        float diffuse = max(dot(n, toLight / dist), 0.0);
        light += uPointLightColors[i] * uPointLightIntensities[i] * diffuse * atten * atten;
    }

    // faint stripes along the track so speed reads on flat white
    float stripe = 0.94 + 0.06 * step(0.5, fract(vUV.y * 4.0));
    vec3 color = uBaseColor * light * stripe;

    float fog = clamp((vViewDepth - uFogStart) / (uFogEnd - uFogStart), 0.0, 1.0);
    FragColor = vec4(mix(color, uFogColor, fog), 1.0);
}
`

// TrackSources returns the vertex and fragment shader for lit track geometry.
func TrackSources() (vertex, fragment string) {
	return trackVertexSrc, fmt.Sprintf(trackFragmentSrc, lighting.MaxPointLights, lighting.MaxSuns)
}

// Uniform names the track program must expose.
var trackUniforms = []string{
	"uModel", "uView", "uProjection",
	"uBaseColor", "uAmbient",
	"uSunCount", "uSunDirections", "uSunColors",
	"uPointLightCount", "uPointLightPositions", "uPointLightColors",
	"uPointLightRanges", "uPointLightIntensities",
	"uFogColor", "uFogStart", "uFogEnd",
}

// NewTrackProgram compiles the lit track program.
func NewTrackProgram() (*Program, error) {
	vs, fs := TrackSources()
	p, err := NewProgram(vs, fs, trackUniforms)
	if err != nil {
		return nil, fmt.Errorf("track shader: %w", err)
	}
	return p, nil
}
