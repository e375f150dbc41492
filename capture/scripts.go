package capture

// In-page scripts. Each is a function expression evaluated with JSON
// arguments; results are decoded into models types, so the object keys
// here follow those types' JSON tags.

const scrollScript = `async (step, pause) => {
	const delay = ms => new Promise(r => setTimeout(r, ms));
	const height = () => Math.max(document.body ? document.body.scrollHeight : 0, document.documentElement.scrollHeight);
	for (let y = 0; y < height(); y += step) {
		window.scrollTo(0, y);
		await delay(pause);
	}
	window.scrollTo(0, 0);
	return true;
}`

const scrollTopScript = `() => { window.scrollTo(0, 0); return true; }`

// helpers shared by the extraction scripts.
const jsHelpers = `
	const cls = (el) => typeof el.className === 'string' ? el.className : (el.getAttribute && el.getAttribute('class')) || '';
	const eachRule = (fn) => {
		for (const sheet of document.styleSheets) {
			let rules;
			try { rules = sheet.cssRules || sheet.rules; } catch (e) { continue; }
			if (!rules) continue;
			for (const rule of rules) {
				try { fn(rule); } catch (e) {}
			}
		}
	};
	const videoInfo = (video, i) => {
		const cs = getComputedStyle(video);
		return {
			index: i,
			src: video.src || '',
			currentSrc: video.currentSrc || '',
			poster: video.poster || '',
			autoplay: !!video.autoplay,
			loop: !!video.loop,
			muted: !!video.muted,
			playsInline: !!video.playsInline,
			preload: video.preload || '',
			width: video.videoWidth || video.clientWidth || 0,
			height: video.videoHeight || video.clientHeight || 0,
			duration: Number.isFinite(video.duration) ? video.duration : null,
			sources: [...video.querySelectorAll('source')].map(s => ({ src: s.src || '', type: s.type || '' })),
			isBlob: (video.src || '').startsWith('blob:'),
			parentClasses: video.parentElement ? cls(video.parentElement) : '',
			styles: {
				position: cs.position,
				objectFit: cs.objectFit,
				zIndex: cs.zIndex,
				opacity: cs.opacity,
			},
		};
	};
	const typographyTags = new Set(['H1','H2','H3','H4','H5','H6','P','SPAN','A','LI','BUTTON']);
	const sampleStyles = () => {
		const root = getComputedStyle(document.documentElement);
		const cssVariables = {};
		for (let i = 0; i < root.length; i++) {
			const prop = root[i];
			if (prop.startsWith('--')) cssVariables[prop] = root.getPropertyValue(prop).trim();
		}
		const elements = [];
		for (const el of document.querySelectorAll('*')) {
			const s = getComputedStyle(el);
			elements.push({
				tag: el.tagName,
				className: cls(el),
				text: typographyTags.has(el.tagName) ? (el.innerText || '').substring(0, 50) : '',
				color: s.color,
				backgroundColor: s.backgroundColor,
				borderColor: s.borderColor,
				outlineColor: s.outlineColor,
				fontFamily: s.fontFamily,
				fontSize: s.fontSize,
				fontWeight: s.fontWeight,
				lineHeight: s.lineHeight,
				letterSpacing: s.letterSpacing,
				textTransform: s.textTransform,
				boxShadow: s.boxShadow,
				borderRadius: s.borderRadius,
				backgroundImage: s.backgroundImage,
			});
		}
		return { cssVariables, elements };
	};
`

const videoElementsScript = `() => {` + jsHelpers + `
	return [...document.querySelectorAll('video')].map(videoInfo);
}`

const styleSamplesScript = `() => {` + jsHelpers + `
	return sampleStyles();
}`

const animationInfoScript = `() => {` + jsHelpers + `
	const animations = [];
	let maxDuration = 0;
	const label = (el) => el.tagName + (cls(el) ? '.' + cls(el).split(' ')[0] : '');
	for (const el of document.querySelectorAll('*')) {
		const s = getComputedStyle(el);
		if (s.animationName && s.animationName !== 'none') {
			const duration = parseFloat(s.animationDuration) || 0;
			const delay = parseFloat(s.animationDelay) || 0;
			const iterations = s.animationIterationCount === 'infinite' ? 1 : (parseFloat(s.animationIterationCount) || 1);
			const total = (duration + delay) * iterations;
			if (duration > 0) {
				animations.push({
					element: label(el),
					name: s.animationName,
					duration: duration,
					delay: delay,
					iterations: s.animationIterationCount,
					totalDuration: total,
				});
				maxDuration = Math.max(maxDuration, total);
			}
		}
		if (s.transitionDuration && s.transitionDuration !== '0s') {
			const duration = parseFloat(s.transitionDuration) || 0;
			if (duration > 0.5) {
				animations.push({
					element: label(el),
					type: 'transition',
					duration: duration,
					property: s.transitionProperty,
				});
			}
		}
	}
	return { animations, maxDuration };
}`

const heroBoxScript = `(selectors) => {
	for (const sel of selectors) {
		let el;
		try { el = document.querySelector(sel); } catch (e) { continue; }
		if (!el) continue;
		const r = el.getBoundingClientRect();
		return { found: true, selector: sel, rect: { x: r.x, y: r.y, width: r.width, height: r.height } };
	}
	return { found: false };
}`

// layoutSelectors are the structural selectors sampled for layout.
var layoutSelectors = []string{
	"body", "header", "nav", "main", "footer", "section", "article",
	".hero", ".container", ".wrapper", `[class*="grid"]`, `[class*="flex"]`,
}

const pageDataScript = `(layoutSelectors, maxMediaQueries) => {` + jsHelpers + `
	const result = {
		html: document.documentElement.outerHTML,
		title: document.title,
		meta: {},
		styles: sampleStyles(),
		keyframes: [],
		mediaQueries: [],
		animations: [],
		inlineStyles: [],
		layout: [],
		videos: [...document.querySelectorAll('video')].map(videoInfo),
		backgroundImages: [],
		links: [],
		fontFaces: [],
	};

	for (const meta of document.querySelectorAll('meta')) {
		const name = meta.getAttribute('name') || meta.getAttribute('property');
		if (name) result.meta[name] = meta.getAttribute('content') || '';
	}

	eachRule(rule => {
		if (rule instanceof CSSKeyframesRule) {
			let css = '@keyframes ' + rule.name + ' {\n';
			for (const kf of rule.cssRules) css += '  ' + kf.keyText + ' { ' + kf.style.cssText + ' }\n';
			result.keyframes.push({ name: rule.name, css: css + '}' });
		} else if (rule instanceof CSSMediaRule) {
			if (result.mediaQueries.length < maxMediaQueries) {
				result.mediaQueries.push({ condition: rule.conditionText || rule.media.mediaText, css: rule.cssText });
			}
		} else if (rule instanceof CSSFontFaceRule) {
			result.fontFaces.push({
				css: rule.cssText,
				fontFamily: rule.style.getPropertyValue('font-family'),
				src: rule.style.getPropertyValue('src'),
				fontWeight: rule.style.getPropertyValue('font-weight'),
				fontStyle: rule.style.getPropertyValue('font-style'),
				fontDisplay: rule.style.getPropertyValue('font-display'),
			});
		}
	});

	for (const el of document.querySelectorAll('*')) {
		const s = getComputedStyle(el);
		if (s.animationName && s.animationName !== 'none') {
			result.animations.push({
				tag: el.tagName, className: cls(el), id: el.id || '',
				animation: s.animation,
				animationName: s.animationName,
				animationDuration: s.animationDuration,
				animationTimingFunction: s.animationTimingFunction,
				animationDelay: s.animationDelay,
				animationIterationCount: s.animationIterationCount,
				animationDirection: s.animationDirection,
				animationFillMode: s.animationFillMode,
			});
		}
		if (s.transition && s.transition !== 'none' && s.transition !== 'all 0s ease 0s' && s.transitionDuration !== '0s') {
			result.animations.push({
				tag: el.tagName, className: cls(el), id: el.id || '',
				transition: s.transition,
				transitionProperty: s.transitionProperty,
				transitionDuration: s.transitionDuration,
				transitionTimingFunction: s.transitionTimingFunction,
			});
		}
		if (s.backgroundImage && s.backgroundImage !== 'none') {
			result.backgroundImages.push({
				tag: el.tagName, className: cls(el),
				backgroundImage: s.backgroundImage,
				backgroundSize: s.backgroundSize,
				backgroundPosition: s.backgroundPosition,
				backgroundRepeat: s.backgroundRepeat,
			});
		}
	}

	for (const el of document.querySelectorAll('[style]')) {
		result.inlineStyles.push({ tag: el.tagName, className: cls(el), id: el.id || '', style: el.getAttribute('style') || '' });
	}

	for (const selector of layoutSelectors) {
		let nodes;
		try { nodes = document.querySelectorAll(selector); } catch (e) { continue; }
		for (const el of nodes) {
			const s = getComputedStyle(el);
			result.layout.push({
				selector: selector, tag: el.tagName, className: cls(el),
				display: s.display, position: s.position,
				width: s.width, maxWidth: s.maxWidth, height: s.height,
				padding: s.padding, margin: s.margin, gap: s.gap,
				gridTemplateColumns: s.gridTemplateColumns, gridTemplateRows: s.gridTemplateRows,
				flexDirection: s.flexDirection, justifyContent: s.justifyContent, alignItems: s.alignItems,
				backgroundColor: s.backgroundColor, backgroundImage: s.backgroundImage,
				borderRadius: s.borderRadius, boxShadow: s.boxShadow,
				overflow: s.overflow, zIndex: s.zIndex,
			});
		}
	}

	for (const link of document.querySelectorAll('link')) {
		result.links.push({ rel: link.rel || '', href: link.href || '', type: link.type || '', as: link.as || '' });
	}
	return result;
}`

// stylesheetsScript reads every sheet's rules; sheets whose rules are not
// accessible are fetched from inside the page. Inline <style> blocks are
// appended after the sheets.
const stylesheetsScript = `async () => {
	const sheets = [];
	let index = 0;
	for (const sheet of document.styleSheets) {
		if (sheet.ownerNode && sheet.ownerNode.tagName === 'STYLE') continue;
		const info = { href: sheet.href || '', index: index++, rules: [] };
		try {
			for (const rule of (sheet.cssRules || sheet.rules)) info.rules.push(rule.cssText);
		} catch (e) {
			if (sheet.href) {
				try {
					const resp = await fetch(sheet.href);
					if (!resp.ok) throw new Error('HTTP ' + resp.status);
					info.rules.push(await resp.text());
					info.fetched = true;
					info.fetched_by = 'page';
				} catch (fetchError) {
					info.error = String(fetchError && fetchError.message || fetchError);
				}
			}
		}
		sheets.push(info);
	}
	document.querySelectorAll('style').forEach((style, i) => {
		sheets.push({ href: '', isInline: true, index: i, rules: [style.textContent || ''] });
	});
	return sheets;
}`

const componentTreeScript = `(maxDepth) => {
	const important = new Set(['header','nav','main','section','article','aside','footer','div','button','a','video','img']);
	const walk = (el, depth) => {
		if (depth > maxDepth) return null;
		const s = getComputedStyle(el);
		const r = el.getBoundingClientRect();
		const first = el.childNodes[0];
		const node = {
			tag: el.tagName.toLowerCase(),
			id: el.id || '',
			classes: (el.getAttribute('class') || '').split(/\s+/).filter(Boolean),
			role: el.getAttribute('role') || '',
			text: first && first.nodeType === 3 ? first.textContent.trim().slice(0, 50) : '',
			dimensions: { width: Math.round(r.width), height: Math.round(r.height) },
			layout: {
				display: s.display,
				position: s.position,
				flexDirection: s.flexDirection,
				justifyContent: s.justifyContent,
				alignItems: s.alignItems,
				gap: s.gap,
			},
			children: [],
		};
		for (const child of el.children) {
			if (!important.has(child.tagName.toLowerCase()) && !(child.getAttribute('class') || '').length) continue;
			const c = walk(child, depth + 1);
			if (c) node.children.push(c);
		}
		return node;
	};
	return document.body ? walk(document.body, 0) : null;
}`
