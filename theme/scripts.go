package theme

// toggleMarker is set on the element a find strategy settles on, so a later
// click can address exactly that node.
const toggleMarker = "data-siteclone-toggle"

const signalsScript = `() => {
	const html = document.documentElement;
	const body = document.body || html;
	const attr = html.getAttribute('data-theme') || body.getAttribute('data-theme') ||
		html.getAttribute('data-mode') || body.getAttribute('data-mode') || '';
	return {
		dataTheme: attr,
		classes: [...html.classList, ...body.classList],
		colorScheme: getComputedStyle(html).colorScheme || '',
		bodyBackground: getComputedStyle(body).backgroundColor || '',
	};
}`

// describeToggle is shared by the find scripts: it reports visibility,
// marks the element and returns its ToggleInfo shape.
const describeToggle = `
	const visible = (el) => {
		if (!el || !el.getClientRects().length) return false;
		const cs = getComputedStyle(el);
		return cs.visibility !== 'hidden' && cs.display !== 'none';
	};
	const describe = (el, selector) => {
		document.querySelectorAll('[` + toggleMarker + `]').forEach(n => n.removeAttribute('` + toggleMarker + `'));
		el.setAttribute('` + toggleMarker + `', '1');
		const r = el.getBoundingClientRect();
		const cls = typeof el.className === 'string' ? el.className : (el.getAttribute('class') || '');
		return {
			found: true,
			selector: selector,
			tag: el.tagName,
			text: (el.innerText || '').trim().substring(0, 50),
			aria_label: el.getAttribute('aria-label') || '',
			class_name: cls,
			rect: { x: r.x, y: r.y + window.scrollY, width: r.width, height: r.height },
		};
	};
`

const findBySelectorScript = `(selector) => {` + describeToggle + `
	let nodes;
	try { nodes = document.querySelectorAll(selector); } catch (e) { return { found: false }; }
	for (const el of nodes) {
		if (visible(el)) return describe(el, selector);
	}
	return { found: false };
}`

const findByTextScript = `(words) => {` + describeToggle + `
	for (const el of document.querySelectorAll('button, [role="button"]')) {
		const text = (el.innerText || '').trim().toLowerCase();
		if (!text || text.length > 40 || !visible(el)) continue;
		if (words.some(w => text.includes(w))) return describe(el, 'button-text');
	}
	return { found: false };
}`

const findByIconScript = `(maxSize) => {` + describeToggle + `
	for (const svg of document.querySelectorAll('svg')) {
		const parent = svg.closest('button, a, [role="button"], [onclick]');
		if (!parent || !visible(parent)) continue;
		const markup = svg.outerHTML.toLowerCase();
		const iconic = markup.includes('moon') || markup.includes('sun') || markup.includes('m12') ||
			(markup.includes('circle') && markup.includes('path'));
		if (!iconic) continue;
		const r = parent.getBoundingClientRect();
		if (r.width < maxSize && r.height < maxSize) return describe(parent, 'svg-icon-button');
	}
	return { found: false };
}`

// scrollForClickScript scrolls so the target sits about 100px below the top
// and returns the resulting scroll offset.
const scrollForClickScript = `(y) => {
	window.scrollTo(0, Math.max(0, y - 100));
	return window.scrollY;
}`

const scrollTopScript = `() => { window.scrollTo(0, 0); return true; }`

// Mutation kinds returned by the script toggle.
const (
	mutationNone      = ""
	mutationAttribute = "attribute"
	mutationSwap      = "class-swap"
	mutationAdd       = "class-add"
)

const scriptToggleScript = `() => {
	const html = document.documentElement;
	const body = document.body || html;
	const current = html.getAttribute('data-theme') || body.getAttribute('data-theme');
	if (current) {
		const next = current.toLowerCase().includes('dark') ? 'light' : 'dark';
		if (html.hasAttribute('data-theme')) html.setAttribute('data-theme', next);
		if (body.hasAttribute('data-theme')) body.setAttribute('data-theme', next);
		return { kind: 'attribute', previous: current };
	}
	if (html.classList.contains('dark')) {
		html.classList.replace('dark', 'light');
		return { kind: 'class-swap', previous: 'dark' };
	}
	if (html.classList.contains('light')) {
		html.classList.replace('light', 'dark');
		return { kind: 'class-swap', previous: 'light' };
	}
	html.classList.add('dark');
	return { kind: 'class-add', previous: '' };
}`

const scriptRevertScript = `(kind, previous) => {
	const html = document.documentElement;
	const body = document.body || html;
	switch (kind) {
	case 'attribute':
		if (html.hasAttribute('data-theme')) html.setAttribute('data-theme', previous);
		if (body.hasAttribute('data-theme')) body.setAttribute('data-theme', previous);
		return true;
	case 'class-swap':
		html.classList.remove('dark', 'light');
		html.classList.add(previous);
		return true;
	case 'class-add':
		html.classList.remove('dark');
		return true;
	}
	return false;
}`
